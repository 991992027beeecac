package table

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Registry holds the open tables by id.
type Registry struct {
	mu     sync.RWMutex
	tables map[uuid.UUID]*Table
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[uuid.UUID]*Table)}
}

func (r *Registry) Add(t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[t.ID] = t
}

func (r *Registry) Get(id uuid.UUID) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	return t, nil
}

func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tables, id)
}

// List returns the tables in creation order.
func (r *Registry) List() []*Table {
	r.mu.RLock()
	out := make([]*Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out
}

// Package store archives finished hands in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

var ErrHandNotFound = errors.New("hand not found")

// HandRecord is one finished hand. Contract is empty when the hand was
// passed out.
type HandRecord struct {
	ID         uuid.UUID           `json:"id"`
	TableID    uuid.UUID           `json:"table_id"`
	Number     int                 `json:"number"`
	Dealer     engine.Seat         `json:"dealer"`
	Contract   string              `json:"contract,omitempty"`
	Declarer   *engine.Seat        `json:"declarer,omitempty"`
	Tally      engine.Tally        `json:"tally"`
	Calls      []engine.Call       `json:"calls"`
	Plays      []engine.PlayRecord `json:"plays,omitempty"`
	FinishedAt time.Time           `json:"finished_at"`
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS hands (
			id TEXT PRIMARY KEY,
			table_id TEXT NOT NULL,
			number INTEGER NOT NULL,
			dealer TEXT NOT NULL,
			contract TEXT NOT NULL,
			declarer TEXT NOT NULL,
			ns_tricks INTEGER NOT NULL,
			ew_tricks INTEGER NOT NULL,
			calls TEXT NOT NULL,
			plays TEXT NOT NULL,
			finished_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create hands table: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveHand inserts rec, assigning an id and finish time when they are zero.
func (s *Store) SaveHand(ctx context.Context, rec *HandRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now().UTC()
	}
	calls, err := json.Marshal(rec.Calls)
	if err != nil {
		return fmt.Errorf("encode calls: %w", err)
	}
	plays, err := json.Marshal(rec.Plays)
	if err != nil {
		return fmt.Errorf("encode plays: %w", err)
	}
	declarer := ""
	if rec.Declarer != nil {
		declarer = rec.Declarer.String()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO hands (id, table_id, number, dealer, contract, declarer, ns_tricks, ew_tricks, calls, plays, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.TableID.String(), rec.Number, rec.Dealer.String(), rec.Contract, declarer,
		rec.Tally.NorthSouth, rec.Tally.EastWest, string(calls), string(plays), rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to save hand %s: %w", rec.ID, err)
	}
	return nil
}

const selectHands = `SELECT id, table_id, number, dealer, contract, declarer, ns_tricks, ew_tricks, calls, plays, finished_at FROM hands`

// GetHand returns the hand with the given id.
func (s *Store) GetHand(ctx context.Context, id uuid.UUID) (HandRecord, error) {
	row := s.db.QueryRowContext(ctx, selectHands+` WHERE id = ?`, id.String())
	rec, err := scanHand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return HandRecord{}, fmt.Errorf("%w: %s", ErrHandNotFound, id)
	}
	return rec, err
}

// ListHands returns archived hands, newest first. A nil tableID lists every
// table; limit <= 0 means no limit.
func (s *Store) ListHands(ctx context.Context, tableID uuid.UUID, limit int) ([]HandRecord, error) {
	query := selectHands
	var args []any
	if tableID != uuid.Nil {
		query += ` WHERE table_id = ?`
		args = append(args, tableID.String())
	}
	query += ` ORDER BY finished_at DESC, number DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hands: %w", err)
	}
	defer rows.Close()

	var out []HandRecord
	for rows.Next() {
		rec, err := scanHand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHand(row scanner) (HandRecord, error) {
	var (
		rec                       HandRecord
		id, tableID, dealer, decl string
		calls, plays              string
	)
	err := row.Scan(&id, &tableID, &rec.Number, &dealer, &rec.Contract, &decl,
		&rec.Tally.NorthSouth, &rec.Tally.EastWest, &calls, &plays, &rec.FinishedAt)
	if err != nil {
		return HandRecord{}, err
	}
	if rec.ID, err = uuid.Parse(id); err != nil {
		return HandRecord{}, fmt.Errorf("hand id %q: %w", id, err)
	}
	if rec.TableID, err = uuid.Parse(tableID); err != nil {
		return HandRecord{}, fmt.Errorf("table id %q: %w", tableID, err)
	}
	if rec.Dealer, err = engine.ParseSeat(dealer); err != nil {
		return HandRecord{}, err
	}
	if decl != "" {
		seat, err := engine.ParseSeat(decl)
		if err != nil {
			return HandRecord{}, err
		}
		rec.Declarer = &seat
	}
	if err := json.Unmarshal([]byte(calls), &rec.Calls); err != nil {
		return HandRecord{}, fmt.Errorf("decode calls of %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(plays), &rec.Plays); err != nil {
		return HandRecord{}, fmt.Errorf("decode plays of %s: %w", id, err)
	}
	return rec, nil
}

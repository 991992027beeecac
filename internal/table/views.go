package table

import (
	"github.com/google/uuid"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

type SeatView struct {
	Seat  engine.Seat `json:"seat"`
	Name  string      `json:"name"`
	Role  engine.Role `json:"role"`
	Cards int         `json:"cards"`
}

// Snapshot is the public state of a table.
type Snapshot struct {
	ID          uuid.UUID                 `json:"id"`
	Phase       engine.Phase              `json:"phase"`
	Dealer      engine.Seat               `json:"dealer"`
	HandsPlayed int                       `json:"hands_played"`
	Seats       [engine.NumSeats]SeatView `json:"seats"`
	ToAct       *engine.Seat              `json:"to_act,omitempty"`
	Controller  *engine.Seat              `json:"controller,omitempty"`
	Result      *engine.Result            `json:"result,omitempty"`
	Tally       engine.Tally              `json:"tally"`
}

type AuctionView struct {
	Dealer    engine.Seat         `json:"dealer"`
	Calls     []engine.Call       `json:"calls"`
	Resolved  bool                `json:"resolved"`
	PassedOut bool                `json:"passed_out"`
	NextSeat  *engine.Seat        `json:"next_seat,omitempty"`
	Highest   *engine.Bid         `json:"highest,omitempty"`
	HighestBy *engine.Seat        `json:"highest_by,omitempty"`
	Doubled   engine.DoubleStatus `json:"doubled"`
	Result    *engine.Result      `json:"result,omitempty"`
}

type TrickView struct {
	Trick      int                 `json:"trick"`
	Leader     engine.Seat         `json:"leader"`
	Trump      string              `json:"trump"`
	Plays      []engine.PlayedCard `json:"plays"`
	NextSeat   *engine.Seat        `json:"next_seat,omitempty"`
	LastWinner *engine.Seat        `json:"last_winner,omitempty"`
}

func seatPtr(s engine.Seat) *engine.Seat { return &s }

func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	g := t.game
	snap := Snapshot{
		ID:          t.ID,
		Phase:       g.Phase,
		Dealer:      g.Dealer,
		HandsPlayed: g.HandsPlayed,
		Tally:       g.TricksTally(),
	}
	for s, p := range g.Players {
		snap.Seats[s] = SeatView{Seat: engine.Seat(s), Name: p.Name, Role: p.Role, Cards: len(p.Hand)}
	}
	if seat, ok := g.ToAct(); ok {
		snap.ToAct = seatPtr(seat)
		snap.Controller = seatPtr(g.Controller(seat))
	}
	if res, ok := g.AuctionResult(); ok {
		snap.Result = &res
	}
	return snap
}

// Auction returns the call history; ok is false before the first deal.
func (t *Table) Auction() (AuctionView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a := t.game.Auction
	if a == nil {
		return AuctionView{}, false
	}
	v := AuctionView{
		Dealer:    a.Dealer(),
		Calls:     a.History(),
		Resolved:  a.Resolved(),
		PassedOut: a.PassedOut(),
		Doubled:   a.DoubleStatus(),
	}
	if bid, seat, ok := a.HighestBid(); ok {
		v.Highest = &bid
		v.HighestBy = seatPtr(seat)
	}
	if !a.Resolved() {
		v.NextSeat = seatPtr(a.CurrentBidder())
	}
	if res, ok := a.Result(); ok {
		v.Result = &res
	}
	return v, true
}

// Trick returns the trick in progress; ok is false outside of play.
func (t *Table) Trick() (TrickView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.game.Play
	if p == nil {
		return TrickView{}, false
	}
	v := TrickView{
		Trick:  p.TrickIndex(),
		Leader: p.Turn(),
		Trump:  p.Contract().Strain.Letter(),
		Plays:  p.CurrentTrick(),
	}
	if len(v.Plays) > 0 {
		v.Leader = v.Plays[0].Seat
	}
	if !p.Complete() {
		v.NextSeat = seatPtr(p.Turn())
	}
	if w, ok := p.LastTrickWinner(); ok {
		v.LastWinner = seatPtr(w)
	}
	return v, true
}

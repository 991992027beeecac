package engine

// EventKind identifies an engine event.
type EventKind string

const (
	EventHandDealt        EventKind = "hand_dealt"
	EventCallPlaced       EventKind = "call_placed"
	EventAuctionResolved  EventKind = "auction_resolved"
	EventAuctionPassedOut EventKind = "auction_passed_out"
	EventCardPlayed       EventKind = "card_played"
	EventTrickWon         EventKind = "trick_won"
	EventHandComplete     EventKind = "hand_complete"
)

// Event describes one accepted state change. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind   EventKind
	Seat   Seat
	Bid    Bid
	Card   Card
	Trick  int
	Result *Result
	Tally  Tally
}

// Observer receives engine events synchronously, in order.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

func notify(o Observer, e Event) {
	if o != nil {
		o.Observe(e)
	}
}

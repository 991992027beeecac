package engine

import "fmt"

// TricksPerHand is the number of tricks in a hand.
const TricksPerHand = HandSize

// PlayedCard is one card contributed to a trick.
type PlayedCard struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// PlayRecord is one entry of the hand history.
type PlayRecord struct {
	Seat  Seat `json:"seat"`
	Card  Card `json:"card"`
	Trick int  `json:"trick"`
}

// Trick holds up to four plays in arrival order; Plays[0] is the lead.
type Trick struct {
	Leader Seat
	Plays  [NumSeats]PlayedCard
	Count  int
	Winner Seat
}

// Cards returns the plays made so far.
func (t *Trick) Cards() []PlayedCard { return append([]PlayedCard(nil), t.Plays[:t.Count]...) }

// LedSuit returns the suit of the first card; ok is false for an empty trick.
func (t *Trick) LedSuit() (Suit, bool) {
	if t.Count == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

func (t *Trick) add(seat Seat, c Card) {
	if t.Count == NumSeats {
		invariant("fifth card added to a trick led by %s", t.Leader)
	}
	t.Plays[t.Count] = PlayedCard{Seat: seat, Card: c}
	t.Count++
}

// TrickWinner returns the seat that wins a complete trick: the highest trump
// if any trump was played, otherwise the highest card of the led suit.
func TrickWinner(plays []PlayedCard, trump Suit, hasTrump bool) Seat {
	if len(plays) != NumSeats {
		invariant("trick resolved with %d plays", len(plays))
	}
	best, _ := WinningPlay(plays, trump, hasTrump)
	return best.Seat
}

// WinningPlay returns the play currently winning a trick, complete or not.
// ok is false for an empty trick.
func WinningPlay(plays []PlayedCard, trump Suit, hasTrump bool) (PlayedCard, bool) {
	if len(plays) == 0 {
		return PlayedCard{}, false
	}
	led := plays[0].Card.Suit
	best := 0
	for i := 1; i < len(plays); i++ {
		if firstCardBetter(plays[i].Card, plays[best].Card, led, trump, hasTrump) {
			best = i
		}
	}
	return plays[best], true
}

// Wins reports whether c would take the lead from the current best play.
func Wins(c Card, best PlayedCard, led, trump Suit, hasTrump bool) bool {
	return firstCardBetter(c, best.Card, led, trump, hasTrump)
}

func firstCardBetter(a, b Card, led, trump Suit, hasTrump bool) bool {
	if hasTrump {
		if a.Suit == trump && b.Suit != trump {
			return true
		}
		if b.Suit == trump && a.Suit != trump {
			return false
		}
		if a.Suit == trump && b.Suit == trump {
			return a.Rank > b.Rank
		}
	}
	if a.Suit == led && b.Suit != led {
		return true
	}
	if a.Suit == led && b.Suit == led {
		return a.Rank > b.Rank
	}
	return false
}

// Play is the trick-play state machine of one hand.
type Play struct {
	hands    [NumSeats][]Card
	contract Contract
	declarer Seat
	trump    Suit
	hasTrump bool

	leader    Seat
	current   Seat
	trick     Trick
	completed []Trick
	history   []PlayRecord
	tally     Tally
	lastWin   Seat
	hasWinner bool
}

// NewPlay starts the play of a hand; the seat left of declarer leads.
// Hands are copied.
func NewPlay(hands [NumSeats][]Card, result Result) *Play {
	p := &Play{
		contract: result.Contract,
		declarer: result.Declarer,
		leader:   result.OpeningLeader,
		current:  result.OpeningLeader,
	}
	p.trump, p.hasTrump = result.Contract.Trump()
	for s := range hands {
		p.hands[s] = append([]Card(nil), hands[s]...)
	}
	p.trick = Trick{Leader: p.leader}
	return p
}

// Contract returns the contract being played.
func (p *Play) Contract() Contract { return p.contract }

// Declarer returns the declarer.
func (p *Play) Declarer() Seat { return p.declarer }

// Dummy returns the declarer's partner.
func (p *Play) Dummy() Seat { return p.declarer.Partner() }

// Trump returns the trump suit; ok is false in No-Trump.
func (p *Play) Trump() (Suit, bool) { return p.trump, p.hasTrump }

// Complete reports whether all tricks have been played.
func (p *Play) Complete() bool { return len(p.completed) == TricksPerHand }

// Turn returns the seat that must play next. While awaiting a lead this is
// the leader, the only seat allowed to lead.
func (p *Play) Turn() Seat {
	if p.trick.Count == 0 {
		return p.leader
	}
	return p.current
}

// TrickIndex returns the 0-based index of the trick in progress.
func (p *Play) TrickIndex() int { return len(p.completed) }

// Hand returns a copy of seat's remaining cards.
func (p *Play) Hand(seat Seat) []Card { return append([]Card(nil), p.hands[seat]...) }

// CurrentTrick returns the plays of the trick in progress.
func (p *Play) CurrentTrick() []PlayedCard { return p.trick.Cards() }

// Tricks returns the completed tricks.
func (p *Play) Tricks() []Trick { return append([]Trick(nil), p.completed...) }

// History returns every accepted play of the hand.
func (p *Play) History() []PlayRecord { return append([]PlayRecord(nil), p.history...) }

// LastTrickWinner returns the winner of the most recent trick.
func (p *Play) LastTrickWinner() (Seat, bool) { return p.lastWin, p.hasWinner }

// Tally returns tricks won so far per partnership.
func (p *Play) Tally() Tally { return p.tally }

// LegalCards returns the cards seat may play now, or nil if it is not
// seat's turn.
func (p *Play) LegalCards(seat Seat) []Card {
	if p.Complete() || seat != p.Turn() {
		return nil
	}
	hand := p.hands[seat]
	led, ok := p.trick.LedSuit()
	if !ok || !hasCardOfSuit(hand, led) {
		return append([]Card(nil), hand...)
	}
	var out []Card
	for _, c := range hand {
		if c.Suit == led {
			out = append(out, c)
		}
	}
	return out
}

// PlayCard applies seat's card. It returns the winner of the trick when this
// card completed one. A rejected play leaves the state unchanged.
func (p *Play) PlayCard(seat Seat, card Card) (winner Seat, trickDone bool, err error) {
	if p.Complete() {
		return 0, false, ErrPlayComplete
	}
	if seat != p.Turn() {
		return 0, false, fmt.Errorf("%w: %s to play, not %s", ErrOutOfTurn, p.Turn(), seat)
	}
	hand := p.hands[seat]
	idx, ok := indexOfCard(hand, card)
	if !ok {
		return 0, false, fmt.Errorf("%w: %s does not hold %s", ErrCardNotHeld, seat, card.ShortName())
	}
	if led, ok := p.trick.LedSuit(); ok && card.Suit != led && hasCardOfSuit(hand, led) {
		return 0, false, fmt.Errorf("%w: %s led, %s holds one", ErrSuitFollowViolation, led, seat)
	}

	p.hands[seat] = removeCard(hand, idx)
	p.trick.add(seat, card)
	p.history = append(p.history, PlayRecord{Seat: seat, Card: card, Trick: len(p.completed)})
	if p.trick.Count < NumSeats {
		p.current = seat.Next()
		return 0, false, nil
	}

	winner = TrickWinner(p.trick.Plays[:], p.trump, p.hasTrump)
	p.trick.Winner = winner
	p.completed = append(p.completed, p.trick)
	p.tally.credit(winner)
	p.lastWin, p.hasWinner = winner, true
	p.leader, p.current = winner, winner
	p.trick = Trick{Leader: winner}

	if p.Complete() {
		for s := range p.hands {
			if len(p.hands[s]) != 0 {
				invariant("%s holds %d cards after the last trick", Seat(s), len(p.hands[s]))
			}
		}
		if recount := TallyHistory(p.history, p.contract); recount != p.tally {
			invariant("running tally %v disagrees with history %v", p.tally, recount)
		}
	}
	return winner, true, nil
}

package engine

import "fmt"

// Tally counts tricks won per partnership.
type Tally struct {
	NorthSouth int `json:"north_south"` // seats 0 and 2
	EastWest   int `json:"east_west"`   // seats 1 and 3
}

// Total returns the number of tricks counted.
func (t Tally) Total() int { return t.NorthSouth + t.EastWest }

// Of returns the tricks won by partnership p.
func (t Tally) Of(p Partnership) int {
	if p == NorthSouth {
		return t.NorthSouth
	}
	return t.EastWest
}

func (t Tally) String() string { return fmt.Sprintf("NS %d - EW %d", t.NorthSouth, t.EastWest) }

func (t *Tally) credit(winner Seat) {
	if winner.Partnership() == NorthSouth {
		t.NorthSouth++
	} else {
		t.EastWest++
	}
}

// TallyHistory recounts a hand history: each complete group of four plays
// sharing a trick index is one trick, credited to its winner's partnership.
// Incomplete trailing tricks are ignored.
func TallyHistory(history []PlayRecord, contract Contract) Tally {
	trump, hasTrump := contract.Trump()
	var t Tally
	var plays []PlayedCard
	for i, rec := range history {
		if len(plays) > 0 && history[i-1].Trick != rec.Trick {
			invariant("trick %d ended after %d plays", history[i-1].Trick, len(plays))
		}
		plays = append(plays, PlayedCard{Seat: rec.Seat, Card: rec.Card})
		if len(plays) == NumSeats {
			t.credit(TrickWinner(plays, trump, hasTrump))
			plays = plays[:0]
		}
	}
	return t
}

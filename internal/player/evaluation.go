package player

import (
	"sort"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

// HighCardPoints counts A=4, K=3, Q=2, J=1.
func HighCardPoints(hand []engine.Card) int {
	points := 0
	for _, c := range hand {
		if c.Rank >= engine.Jack {
			points += int(c.Rank - engine.Ten)
		}
	}
	return points
}

// SuitLengths returns the number of cards held in each suit, indexed by Suit.
func SuitLengths(hand []engine.Card) [4]int {
	var lengths [4]int
	for _, c := range hand {
		lengths[c.Suit]++
	}
	return lengths
}

// IsBalanced reports a 4-3-3-3, 4-4-3-2 or 5-3-3-2 shape.
func IsBalanced(lengths [4]int) bool {
	shape := lengths
	sort.Sort(sort.Reverse(sort.IntSlice(shape[:])))
	switch shape {
	case [4]int{4, 3, 3, 3}, [4]int{4, 4, 3, 2}, [4]int{5, 3, 3, 2}:
		return true
	}
	return false
}

// DistributionPoints scores shortness: void 3, singleton 2, doubleton 1.
func DistributionPoints(lengths [4]int) int {
	points := 0
	for _, n := range lengths {
		if n < 3 {
			points += 3 - n
		}
	}
	return points
}

// HasStopper reports whether hand can stop suit: an ace, a guarded king,
// a queen with two more or a jack with three more.
func HasStopper(hand []engine.Card, suit engine.Suit) bool {
	n := 0
	var top engine.Rank
	for _, c := range hand {
		if c.Suit != suit {
			continue
		}
		n++
		if c.Rank > top {
			top = c.Rank
		}
	}
	switch top {
	case engine.Ace:
		return true
	case engine.King:
		return n >= 2
	case engine.Queen:
		return n >= 3
	case engine.Jack:
		return n >= 4
	}
	return false
}

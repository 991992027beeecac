package player

import (
	"testing"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

func hand(names ...string) []engine.Card {
	out := make([]engine.Card, len(names))
	for i, n := range names {
		out[i] = engine.MustParseCard(n)
	}
	return out
}

func TestHighCardPoints(t *testing.T) {
	tests := []struct {
		name string
		hand []engine.Card
		want int
	}{
		{"empty", nil, 0},
		{"honours", hand("AS", "KH", "QD", "JC"), 10},
		{"spot cards", hand("10S", "9H", "2D"), 0},
		{"all aces", hand("AS", "AH", "AD", "AC"), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HighCardPoints(tt.hand); got != tt.want {
				t.Fatalf("HighCardPoints() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSuitLengths(t *testing.T) {
	got := SuitLengths(hand("AS", "2S", "3H", "4D", "5D", "6D"))
	want := [4]int{engine.Clubs: 0, engine.Diamonds: 3, engine.Hearts: 1, engine.Spades: 2}
	if got != want {
		t.Fatalf("SuitLengths() = %v, want %v", got, want)
	}
}

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		shape [4]int
		want  bool
	}{
		{[4]int{4, 3, 3, 3}, true},
		{[4]int{3, 4, 2, 4}, true},
		{[4]int{2, 3, 5, 3}, true},
		{[4]int{5, 4, 2, 2}, false},
		{[4]int{4, 4, 4, 1}, false},
		{[4]int{6, 3, 2, 2}, false},
		{[4]int{5, 5, 2, 1}, false},
	}
	for _, tt := range tests {
		if got := IsBalanced(tt.shape); got != tt.want {
			t.Fatalf("IsBalanced(%v) = %v, want %v", tt.shape, got, tt.want)
		}
	}
}

func TestDistributionPoints(t *testing.T) {
	if got := DistributionPoints([4]int{5, 4, 3, 1}); got != 2 {
		t.Fatalf("singleton should score 2, got %d", got)
	}
	if got := DistributionPoints([4]int{7, 6, 0, 0}); got != 6 {
		t.Fatalf("two voids should score 6, got %d", got)
	}
	if got := DistributionPoints([4]int{4, 3, 3, 3}); got != 0 {
		t.Fatalf("flat hand should score 0, got %d", got)
	}
}

func TestHasStopper(t *testing.T) {
	tests := []struct {
		name string
		hand []engine.Card
		want bool
	}{
		{"bare ace", hand("AH"), true},
		{"bare king", hand("KH"), false},
		{"guarded king", hand("KH", "2H"), true},
		{"queen doubleton", hand("QH", "2H"), false},
		{"queen third", hand("QH", "3H", "2H"), true},
		{"jack fourth", hand("JH", "4H", "3H", "2H"), true},
		{"void", hand("AS", "AD"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasStopper(tt.hand, engine.Hearts); got != tt.want {
				t.Fatalf("HasStopper() = %v, want %v", got, tt.want)
			}
		})
	}
}

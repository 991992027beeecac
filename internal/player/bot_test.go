package player

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

func TestOpeningBid(t *testing.T) {
	tests := []struct {
		name string
		hand []engine.Card
		want string
	}{
		{"weak", hand("2S", "3S", "4S", "5S", "2H", "3H", "4H", "2D", "3D", "4D", "2C", "3C", "JC"), "Pass"},
		{"balanced sixteen", hand("AS", "KS", "4S", "3S", "AH", "QH", "5H", "KD", "5D", "4D", "6C", "5C", "4C"), "1NT"},
		{"balanced twenty one", hand("AS", "KS", "3S", "2S", "AH", "KH", "2H", "AD", "2D", "3D", "KC", "2C", "3C"), "2NT"},
		{"six spades", hand("AS", "KS", "QS", "5S", "4S", "3S", "AH", "2H", "2D", "3D", "4D", "2C", "3C"), "1S"},
		{"equal minors", hand("2S", "AH", "KH", "3H", "4H", "AD", "3D", "4D", "5D", "QC", "3C", "4C", "5C"), "1D"},
		{"longer clubs", hand("2S", "AH", "3H", "4H", "KD", "3D", "4D", "5D", "AC", "KC", "3C", "4C", "5C"), "1C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OpeningBid(tt.hand); got != engine.MustParseBid(tt.want) {
				t.Fatalf("OpeningBid() = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestPointCountBotCalls(t *testing.T) {
	tests := []struct {
		name   string
		prefix []string // calls from South onwards
		hand   []engine.Card
		want   string
	}{
		{
			name: "opens",
			hand: hand("AS", "KS", "4S", "3S", "AH", "QH", "5H", "KD", "5D", "4D", "6C", "5C", "4C"),
			want: "1NT",
		},
		{
			name:   "raises partner's major",
			prefix: []string{"1H", "Pass"},
			hand:   hand("2S", "3S", "4S", "5S", "KH", "3H", "4H", "KD", "3D", "4D", "QC", "3C", "4C"),
			want:   "2H",
		},
		{
			name:   "takeout double",
			prefix: []string{"1H"},
			hand:   hand("AS", "KS", "3S", "2S", "2H", "AD", "KD", "3D", "2D", "5C", "4C", "3C", "2C"),
			want:   "Double",
		},
		{
			name:   "overcall",
			prefix: []string{"1H"},
			hand:   hand("AS", "KS", "5S", "4S", "3S", "2H", "3H", "4H", "QD", "2D", "QC", "3C", "2C"),
			want:   "1S",
		},
		{
			name:   "counts shortness when raising",
			prefix: []string{"1H", "Pass"},
			hand:   hand("KS", "QS", "5S", "4S", "3S", "KH", "3H", "2H", "2D", "QC", "4C", "3C", "2C"),
			want:   "3H",
		},
		{
			name:   "notrump overcall with a stopper",
			prefix: []string{"1H"},
			hand:   hand("AS", "KS", "4S", "3S", "AH", "QH", "5H", "KD", "5D", "4D", "6C", "5C", "4C"),
			want:   "1NT",
		},
		{
			name:   "doubles without a stopper",
			prefix: []string{"1H"},
			hand:   hand("AS", "KS", "4S", "3S", "5H", "4H", "AD", "KD", "5D", "4D", "KC", "5C", "4C"),
			want:   "Double",
		},
		{
			name:   "leaves partner's double in",
			prefix: []string{"1H", "Double", "Pass"},
			hand:   hand("AS", "KS", "5S", "4S", "3S", "2H", "3H", "4H", "QD", "2D", "QC", "3C", "2C"),
			want:   "Pass",
		},
		{
			name:   "stays quiet after bidding once",
			prefix: []string{"1H", "1S", "Pass", "Pass"},
			hand:   hand("AS", "KS", "4S", "3S", "AH", "QH", "5H", "KD", "5D", "4D", "6C", "5C", "4C"),
			want:   "Pass",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := engine.NewAuction(engine.South)
			for _, c := range tt.prefix {
				if err := a.PlaceCall(a.CurrentBidder(), engine.MustParseBid(c)); err != nil {
					t.Fatalf("setup call %s: %v", c, err)
				}
			}
			bot := NewPointCountBot("", nil)
			got, err := bot.ChooseCall(tt.hand, a.LegalCalls(), a)
			if err != nil {
				t.Fatalf("ChooseCall: %v", err)
			}
			if got != engine.MustParseBid(tt.want) {
				t.Fatalf("ChooseCall() = %v, want %s", got, tt.want)
			}
		})
	}
}

// newBotPlay starts a hearts contract declared by South with West on lead.
func newBotPlay(t *testing.T, south, west, north, east []engine.Card) *engine.Play {
	t.Helper()
	return engine.NewPlay([engine.NumSeats][]engine.Card{south, west, north, east}, engine.Result{
		Contract:      engine.Contract{Level: 2, Strain: engine.StrainHearts},
		Declarer:      engine.South,
		Dummy:         engine.North,
		OpeningLeader: engine.West,
	})
}

func TestPointCountBotCards(t *testing.T) {
	tests := []struct {
		name  string
		north []engine.Card
		east  []engine.Card
		plays []string // played before the bot acts, from West
		want  string
	}{
		{
			name:  "cheapest winner",
			north: hand("AS", "QS", "JS", "2H"),
			east:  hand("2C", "3C", "4C", "5C"),
			plays: []string{"10S"},
			want:  "JS",
		},
		{
			name:  "cannot win",
			north: hand("KS", "2S", "3C", "4C"),
			east:  hand("2C", "5C", "6C", "7C"),
			plays: []string{"AS"},
			want:  "2S",
		},
		{
			name:  "ruffs low",
			north: hand("3H", "2H", "AD", "4C"),
			east:  hand("2C", "5C", "6C", "7C"),
			plays: []string{"AS"},
			want:  "2H",
		},
		{
			name:  "partner already winning",
			north: hand("2S", "3C", "4C", "5C"),
			east:  hand("KS", "3S", "6C", "7C"),
			plays: []string{"AS", "2S"},
			want:  "3S",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			west := hand("AS", "10S", "8D", "9D")
			south := hand("7S", "8S", "9S", "10D")
			p := newBotPlay(t, south, west, tt.north, tt.east)
			for _, c := range tt.plays {
				if _, _, err := p.PlayCard(p.Turn(), engine.MustParseCard(c)); err != nil {
					t.Fatalf("setup play %s: %v", c, err)
				}
			}
			seat := p.Turn()
			bot := NewPointCountBot("", nil)
			got, err := bot.ChooseCard(p.Hand(seat), p.LegalCards(seat), p)
			if err != nil {
				t.Fatalf("ChooseCard: %v", err)
			}
			if got != engine.MustParseCard(tt.want) {
				t.Fatalf("ChooseCard() = %s, want %s", got.ShortName(), tt.want)
			}
		})
	}
}

func TestPointCountBotOpeningLead(t *testing.T) {
	west := hand("KS", "QS", "2S", "AH")
	p := newBotPlay(t, hand("3S", "4S", "5S", "6S"), west, hand("7S", "8S", "9S", "10S"), hand("2C", "3C", "4C", "5C"))
	got, err := NewPointCountBot("", nil).ChooseCard(west, p.LegalCards(engine.West), p)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != engine.MustParseCard("KS") {
		t.Fatalf("expected top of the long suit, got %s", got.ShortName())
	}
}

func TestRandomBot(t *testing.T) {
	bot := NewRandomBot("", rand.New(rand.NewSource(5)))
	if name := bot.Name(); len(name) < len("RandomBot_") || name[:len("RandomBot_")] != "RandomBot_" {
		t.Fatalf("unexpected default name %q", name)
	}
	legal := []engine.Bid{engine.Pass, engine.MustParseBid("1C"), engine.MustParseBid("7NT")}
	for i := 0; i < 50; i++ {
		got, err := bot.ChooseCall(nil, legal, nil)
		if err != nil {
			t.Fatalf("ChooseCall: %v", err)
		}
		if got != legal[0] && got != legal[1] && got != legal[2] {
			t.Fatalf("chose %v outside the legal set", got)
		}
	}
	if _, err := bot.ChooseCard(nil, nil, nil); !errors.Is(err, ErrNoLegalOptions) {
		t.Fatalf("expected ErrNoLegalOptions, got %v", err)
	}
	if _, err := bot.ChooseCall(nil, nil, nil); !errors.Is(err, ErrNoLegalOptions) {
		t.Fatalf("expected ErrNoLegalOptions, got %v", err)
	}
}

func TestFactoryFor(t *testing.T) {
	for _, kind := range []string{KindRandom, KindPoints, ""} {
		f, err := FactoryFor(kind)
		if err != nil {
			t.Fatalf("FactoryFor(%q): %v", kind, err)
		}
		if p := f("Bot", rand.New(rand.NewSource(1))); p.Name() != "Bot" {
			t.Fatalf("FactoryFor(%q) built %q", kind, p.Name())
		}
	}
	if _, err := FactoryFor("oracle"); err == nil {
		t.Fatalf("unknown kind should be rejected")
	}
}

// Four bots of each kind always find a legal call and card for a full hand.
func TestBotsCompleteHands(t *testing.T) {
	for _, kind := range []string{KindRandom, KindPoints} {
		t.Run(kind, func(t *testing.T) {
			factory, _ := FactoryFor(kind)
			rng := rand.New(rand.NewSource(11))
			for n := 0; n < 20; n++ {
				g := engine.NewGame(engine.GameParams{RotateDealer: true}, rng, nil)
				g.NewHand()
				if _, err := g.Deal(); err != nil {
					t.Fatalf("Deal: %v", err)
				}
				var bots [engine.NumSeats]Player
				for s := range bots {
					bots[s] = factory("", rng)
				}
				for !g.HandOver() {
					seat, _ := g.ToAct()
					bot := bots[g.Controller(seat)]
					var err error
					if g.Phase == engine.PhaseAuction {
						var bid engine.Bid
						bid, err = bot.ChooseCall(g.Hand(seat), g.LegalCalls(seat), g.Auction)
						if err == nil {
							err = g.PlaceCall(seat, bid)
						}
					} else {
						var card engine.Card
						card, err = bot.ChooseCard(g.Hand(seat), g.LegalCards(seat), g.Play)
						if err == nil {
							err = g.PlayCard(seat, card)
						}
					}
					if err != nil {
						t.Fatalf("hand %d, %s: %v", n, seat, err)
					}
				}
				if g.Phase == engine.PhaseHandComplete && g.TricksTally().Total() != engine.TricksPerHand {
					t.Fatalf("hand %d: tally %v", n, g.TricksTally())
				}
			}
		})
	}
}

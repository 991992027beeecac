package player

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

var ErrNoLegalOptions = errors.New("no legal options")

// Player chooses calls and cards for one seat. The engine has already
// filtered the legal options; a Player only picks among them.
type Player interface {
	Name() string
	ChooseCall(hand []engine.Card, legal []engine.Bid, auction *engine.Auction) (engine.Bid, error)
	ChooseCard(hand []engine.Card, legal []engine.Card, play *engine.Play) (engine.Card, error)
}

type PlayerFactory func(name string, rng *rand.Rand) Player

// Bot kinds accepted by FactoryFor.
const (
	KindRandom = "random"
	KindPoints = "points"
)

// FactoryFor returns the constructor registered under kind. An empty kind
// selects the point-count bot.
func FactoryFor(kind string) (PlayerFactory, error) {
	switch kind {
	case KindRandom:
		return NewRandomBot, nil
	case KindPoints, "":
		return NewPointCountBot, nil
	}
	return nil, fmt.Errorf("unknown bot kind %q", kind)
}

package player

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

// RandomBot picks uniformly among the legal options.
type RandomBot struct {
	BotName string
	rng     *rand.Rand
}

func NewRandomBot(name string, rng *rand.Rand) Player {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomBot{BotName: name, rng: rng}
}

func (b *RandomBot) Name() string {
	if b.BotName == "" {
		b.BotName = "RandomBot_" + strconv.Itoa(b.rng.Intn(100))
	}
	return b.BotName
}

func (b *RandomBot) ChooseCall(_ []engine.Card, legal []engine.Bid, _ *engine.Auction) (engine.Bid, error) {
	if len(legal) == 0 {
		return engine.Bid{}, ErrNoLegalOptions
	}
	return legal[b.rng.Intn(len(legal))], nil
}

func (b *RandomBot) ChooseCard(_ []engine.Card, legal []engine.Card, _ *engine.Play) (engine.Card, error) {
	if len(legal) == 0 {
		return engine.Card{}, ErrNoLegalOptions
	}
	return legal[b.rng.Intn(len(legal))], nil
}

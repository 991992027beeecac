package table

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

// LogObserver writes engine events to a zap logger. Hand-level events go
// out at info, calls and cards at debug.
type LogObserver struct {
	Logger  *zap.Logger
	TableID uuid.UUID
}

func (o LogObserver) Observe(e engine.Event) {
	log := o.Logger.With(zap.String("table", o.TableID.String()), zap.String("event", string(e.Kind)))
	switch e.Kind {
	case engine.EventHandDealt:
		log.Info("hand dealt", zap.String("dealer", e.Seat.String()))
	case engine.EventCallPlaced:
		log.Debug("call placed", zap.String("seat", e.Seat.String()), zap.String("bid", e.Bid.String()))
	case engine.EventAuctionResolved:
		log.Info("auction resolved",
			zap.String("contract", e.Result.Contract.String()),
			zap.String("declarer", e.Result.Declarer.String()),
			zap.String("leader", e.Result.OpeningLeader.String()))
	case engine.EventAuctionPassedOut:
		log.Info("hand passed out", zap.String("dealer", e.Seat.String()))
	case engine.EventCardPlayed:
		log.Debug("card played",
			zap.String("seat", e.Seat.String()),
			zap.String("card", e.Card.ShortName()),
			zap.Int("trick", e.Trick))
	case engine.EventTrickWon:
		log.Debug("trick won",
			zap.String("winner", e.Seat.String()),
			zap.Int("trick", e.Trick),
			zap.Stringer("tally", e.Tally))
	case engine.EventHandComplete:
		log.Info("hand complete",
			zap.Int("north_south", e.Tally.NorthSouth),
			zap.Int("east_west", e.Tally.EastWest))
	default:
		log.Warn("unknown event")
	}
}

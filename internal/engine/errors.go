package engine

import (
	"errors"
	"fmt"
)

type PhaseError string

func (e PhaseError) Error() string { return string(e) }

const (
	ErrNotDealPhase    PhaseError = "not in deal phase"
	ErrNotAuctionPhase PhaseError = "not in auction phase"
	ErrNotPlayPhase    PhaseError = "not in play phase"
	ErrAuctionClosed   PhaseError = "auction is closed"
	ErrPlayComplete    PhaseError = "all tricks have been played"
)

// Rejections of caller input. Each leaves engine state unchanged.
var (
	ErrInvalidBidText      = errors.New("invalid bid text")
	ErrInvalidCardText     = errors.New("invalid card text")
	ErrIllegalCall         = errors.New("illegal call")
	ErrOutOfTurn           = errors.New("out of turn")
	ErrCardNotHeld         = errors.New("card not held")
	ErrSuitFollowViolation = errors.New("must follow suit")
	ErrDeckExhausted       = errors.New("deck exhausted")
	ErrInvalidDeal         = errors.New("invalid deal")
)

// invariant aborts on a broken internal invariant. These are programming
// errors, never caller mistakes.
func invariant(format string, args ...any) {
	panic("invariant violation: " + fmt.Sprintf(format, args...))
}

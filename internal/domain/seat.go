package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type SeatType string

const (
	SeatTypeRegular SeatType = "REGULAR"
	SeatTypePremium SeatType = "PREMIUM"
	SeatTypeVIP     SeatType = "VIP"
)

// Seat belongs to exactly one show. A seat is sold once IsAvailable is
// false; IsBlocked marks a temporary hold that is void as soon as the clock
// passes BlockedUntil, even if the flag has not been cleared yet.
type Seat struct {
	ID           int
	ShowID       int
	Row          string
	Number       int
	Type         SeatType
	Price        *decimal.Decimal
	IsAvailable  bool
	IsBlocked    bool
	BlockedUntil *time.Time
	BlockToken   *string
}

// Label is the human-facing seat name, e.g. "A12".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

// EffectivePrice falls back to the show's base price when the seat carries
// no price of its own.
func (s Seat) EffectivePrice(basePrice decimal.Decimal) decimal.Decimal {
	if s.Price != nil {
		return *s.Price
	}

	return basePrice
}

// HeldAt reports whether the seat is under a live hold at the given instant.
func (s Seat) HeldAt(now time.Time) bool {
	return s.IsBlocked && s.BlockedUntil != nil && s.BlockedUntil.After(now)
}

type SeatRepository interface {
	GetSeatsByShow(ctx context.Context, showID int) ([]Seat, error)
	GetSeatsByShowAndSeatIds(ctx context.Context, showID int, seatIDs []int) ([]Seat, error)

	// BlockSeats places a hold on the whole seat set as one atomic storage
	// operation. It fails with ErrSeatsUnavailable when any seat is sold,
	// or under a live hold, leaving every seat untouched.
	BlockSeats(ctx context.Context, showID int, seatIDs []int, token string, until time.Time) error

	// ReleaseSeats clears holds owned by token. Seats that are already free
	// are skipped; sold seats are never touched. Returns the number of
	// seats actually released.
	ReleaseSeats(ctx context.Context, showID int, seatIDs []int, token string) (int, error)

	// ReleaseExpired frees every hold whose expiry has passed, across all
	// shows. The expiry check runs inside the update statement itself, so a
	// hold refreshed or confirmed after being observed is never clobbered.
	ReleaseExpired(ctx context.Context) (int, error)

	CountAvailable(ctx context.Context, showID int) (int, error)
	CountTotal(ctx context.Context, showID int) (int, error)
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Show struct {
	ID             int
	MovieID        int
	MovieTitle     string
	VenueID        int
	VenueName      string
	ScreenName     string
	StartTime      time.Time
	BasePrice      decimal.Decimal
	TotalSeats     int
	AvailableSeats int
	CreatedAt      time.Time
}

// CancellationDeadline is the last moment a confirmed booking for this show
// can still be cancelled.
func (s Show) CancellationDeadline() time.Time {
	return s.StartTime.Add(-CancellationWindow)
}

type ShowRepository interface {
	GetById(ctx context.Context, showID int) (*Show, error)
}

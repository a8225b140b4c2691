package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "RESERVED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// CancellationWindow is how long before showtime cancellation closes.
const CancellationWindow = 2 * time.Hour

const bookingReferencePrefix = "MB"

type Booking struct {
	ID               int
	UserID           int
	ShowID           int
	BookingReference string
	TotalAmount      decimal.Decimal
	Status           BookingStatus
	PaymentStatus    PaymentStatus
	PaymentMethod    string
	TransactionID    string
	Seats            []Seat
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanCancelAt reports whether the booking is still cancellable at the given
// instant: it must be CONFIRMED and more than CancellationWindow ahead of
// the show's start time.
func (b Booking) CanCancelAt(now, showStart time.Time) bool {
	return b.Status == BookingStatusConfirmed &&
		now.Add(CancellationWindow).Before(showStart)
}

// NewBookingReference builds a human-readable reference: a fixed prefix, a
// millisecond timestamp, and a short random alphanumeric suffix. Global
// uniqueness is enforced by the storage layer, not here.
func NewBookingReference(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("%s%d%s", bookingReferencePrefix, now.UnixMilli(), suffix)
}

type BookingSummaryRow struct {
	ID               int
	BookingReference string
	MovieTitle       string
	VenueName        string
	ShowStartTime    time.Time
	TotalAmount      decimal.Decimal
	Status           BookingStatus
	SeatCount        int
	CreatedAt        time.Time
}

type BookingRepository interface {
	// CreateConfirmed persists the booking and finalizes its seats as sold in
	// one transaction: insert booking + seat links, conditionally mark seats
	// sold (they must still be available and held under holdToken), and
	// reproject the show's available-seat counter. Fails with
	// ErrSeatsUnavailable when the conditional update covers fewer rows than
	// requested, and with ErrReferenceCollision on a duplicate reference.
	// Returns the show's availability counter after the commit.
	CreateConfirmed(ctx context.Context, booking *Booking, holdToken string) (int, error)

	GetById(ctx context.Context, bookingID int) (*Booking, error)
	GetByReference(ctx context.Context, reference string) (*Booking, error)

	// Cancel flips CONFIRMED to CANCELLED, returns the booking's seats to
	// available, and reprojects the show counter, all in one transaction.
	// Fails with ErrBookingAlreadyCancelled when the status guard matches no
	// row. Returns the refreshed availability counter.
	Cancel(ctx context.Context, bookingID int) (int, error)

	GetSummariesByUserId(ctx context.Context, userID int, pagination Pagination) ([]BookingSummaryRow, *Metadata, error)
}

package mocks

import (
	"context"
	"time"

	"github.com/movietick/booking-backend/internal/domain"
)

type MockSeatRepo struct {
	GetSeatsByShowFunc           func(ctx context.Context, showID int) ([]domain.Seat, error)
	GetSeatsByShowAndSeatIdsFunc func(ctx context.Context, showID int, seatIDs []int) ([]domain.Seat, error)
	BlockSeatsFunc               func(ctx context.Context, showID int, seatIDs []int, token string, until time.Time) error
	ReleaseSeatsFunc             func(ctx context.Context, showID int, seatIDs []int, token string) (int, error)
	ReleaseExpiredFunc           func(ctx context.Context) (int, error)
	CountAvailableFunc           func(ctx context.Context, showID int) (int, error)
	CountTotalFunc               func(ctx context.Context, showID int) (int, error)
}

func (m *MockSeatRepo) GetSeatsByShow(ctx context.Context, showID int) ([]domain.Seat, error) {
	return m.GetSeatsByShowFunc(ctx, showID)
}

func (m *MockSeatRepo) GetSeatsByShowAndSeatIds(
	ctx context.Context,
	showID int,
	seatIDs []int) ([]domain.Seat, error) {

	return m.GetSeatsByShowAndSeatIdsFunc(ctx, showID, seatIDs)
}

func (m *MockSeatRepo) BlockSeats(
	ctx context.Context,
	showID int,
	seatIDs []int,
	token string,
	until time.Time) error {

	return m.BlockSeatsFunc(ctx, showID, seatIDs, token, until)
}

func (m *MockSeatRepo) ReleaseSeats(ctx context.Context, showID int, seatIDs []int, token string) (int, error) {
	return m.ReleaseSeatsFunc(ctx, showID, seatIDs, token)
}

func (m *MockSeatRepo) ReleaseExpired(ctx context.Context) (int, error) {
	return m.ReleaseExpiredFunc(ctx)
}

func (m *MockSeatRepo) CountAvailable(ctx context.Context, showID int) (int, error) {
	return m.CountAvailableFunc(ctx, showID)
}

func (m *MockSeatRepo) CountTotal(ctx context.Context, showID int) (int, error) {
	return m.CountTotalFunc(ctx, showID)
}

package mocks

import (
	"context"

	"github.com/movietick/booking-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) CreateConfirmed(ctx context.Context, booking *domain.Booking, holdToken string) (int, error) {
	args := m.Called(ctx, booking, holdToken)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) GetById(ctx context.Context, bookingID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, bookingID int) (int, error) {
	args := m.Called(ctx, bookingID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummaryRow, *domain.Metadata, error) {

	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.BookingSummaryRow), args.Get(1).(*domain.Metadata), args.Error(2)
}

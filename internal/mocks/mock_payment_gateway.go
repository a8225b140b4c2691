package mocks

import (
	"context"

	"github.com/movietick/booking-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentGateway struct {
	mock.Mock
	domain.PaymentGateway
}

func (m *MockPaymentGateway) Process(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.PaymentResult), args.Error(1)
}

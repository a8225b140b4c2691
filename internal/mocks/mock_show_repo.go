package mocks

import (
	"context"

	"github.com/movietick/booking-backend/internal/domain"
)

type MockShowRepo struct {
	GetByIdFunc func(ctx context.Context, showID int) (*domain.Show, error)
}

func (m *MockShowRepo) GetById(ctx context.Context, showID int) (*domain.Show, error) {
	return m.GetByIdFunc(ctx, showID)
}

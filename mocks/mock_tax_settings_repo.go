package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"petledger/internal/domain"
)

// MockTaxSettingsRepo is a mock implementation of port.TaxSettingsRepository.
type MockTaxSettingsRepo struct {
	mock.Mock
}

func (m *MockTaxSettingsRepo) BulkUpdate(ctx context.Context, update domain.TaxSettingsUpdate) (int, error) {
	args := m.Called(ctx, update)
	return args.Int(0), args.Error(1)
}

func (m *MockTaxSettingsRepo) Get(ctx context.Context, itemID string) (*domain.TaxConfig, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxConfig), args.Error(1)
}

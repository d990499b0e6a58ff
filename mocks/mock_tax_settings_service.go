package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"petledger/internal/domain"
	"petledger/internal/service"
)

// MockTaxSettingsService is a mock implementation of service.TaxSettingsService.
type MockTaxSettingsService struct {
	mock.Mock
}

func (m *MockTaxSettingsService) Update(ctx context.Context, update domain.TaxSettingsUpdate) (*service.TaxSettingsResult, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaxSettingsResult), args.Error(1)
}

func (m *MockTaxSettingsService) Get(ctx context.Context, itemID string) (*domain.TaxConfig, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxConfig), args.Error(1)
}

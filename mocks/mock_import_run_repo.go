package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"petledger/internal/domain"
)

// MockImportRunRepo is a mock implementation of port.ImportRunRepository.
type MockImportRunRepo struct {
	mock.Mock
}

func (m *MockImportRunRepo) Upsert(ctx context.Context, run *domain.ImportRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockImportRunRepo) ListRecent(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportRun), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"petledger/internal/domain"
)

// MockProductSubmitter is a mock implementation of port.ProductSubmitter.
type MockProductSubmitter struct {
	mock.Mock
}

func (m *MockProductSubmitter) SubmitProducts(ctx context.Context, products []domain.Product) (*domain.SubmitResult, error) {
	args := m.Called(ctx, products)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmitResult), args.Error(1)
}

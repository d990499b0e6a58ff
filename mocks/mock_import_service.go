package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"petledger/internal/domain"
	"petledger/internal/importer"
	"petledger/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Validate(ctx context.Context, upload service.ImportUpload) (*service.ImportValidation, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportValidation), args.Error(1)
}

func (m *MockImportService) Submit(ctx context.Context, sessionID string) (*domain.SubmitResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmitResult), args.Error(1)
}

func (m *MockImportService) Get(ctx context.Context, sessionID string) (*importer.Snapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.Snapshot), args.Error(1)
}

func (m *MockImportService) Report(ctx context.Context, sessionID string) (*importer.Report, string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*importer.Report), args.String(1), args.Error(2)
}

func (m *MockImportService) ListRuns(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportRun), args.Error(1)
}

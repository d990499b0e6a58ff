package port

import (
	"context"

	"petledger/internal/domain"
)

// ImportRunRepository keeps one summary row per import session.
type ImportRunRepository interface {
	Upsert(ctx context.Context, run *domain.ImportRun) error
	ListRecent(ctx context.Context, limit int) ([]domain.ImportRun, error)
}

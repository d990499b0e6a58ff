package port

import (
	"context"

	"petledger/internal/domain"
)

// ProductSubmitter persists validated import records. It reports how many
// records were stored and how many were rejected; an error means the call as
// a whole failed.
type ProductSubmitter interface {
	SubmitProducts(ctx context.Context, products []domain.Product) (*domain.SubmitResult, error)
}

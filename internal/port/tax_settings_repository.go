package port

import (
	"context"

	"petledger/internal/domain"
)

// TaxSettingsRepository stores per-item tax configuration.
type TaxSettingsRepository interface {
	// BulkUpdate applies update.GSTSettings to every item in update.ItemIDs
	// and returns the number of items written.
	BulkUpdate(ctx context.Context, update domain.TaxSettingsUpdate) (int, error)
	Get(ctx context.Context, itemID string) (*domain.TaxConfig, error)
}

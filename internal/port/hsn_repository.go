package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// HSNEntry represents a single HSN/SAC code entry with its GST rate.
type HSNEntry struct {
	Code          string          `db:"code"`
	Description   string          `db:"description"`
	GSTRate       decimal.Decimal `db:"gst_rate"`
	ConditionDesc string          `db:"condition_desc"`
}

// HSNRepository loads the HSN/SAC master list.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]HSNEntry, error)
}

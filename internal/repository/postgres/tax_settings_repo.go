package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"petledger/internal/domain"
	"petledger/internal/port"
)

type taxSettingsRepo struct {
	db *sqlx.DB
}

// NewTaxSettingsRepo creates a new PostgreSQL-backed TaxSettingsRepository.
func NewTaxSettingsRepo(db *sqlx.DB) port.TaxSettingsRepository {
	return &taxSettingsRepo{db: db}
}

func (r *taxSettingsRepo) BulkUpdate(ctx context.Context, update domain.TaxSettingsUpdate) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("taxSettingsRepo.BulkUpdate begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cfg := update.GSTSettings
	now := time.Now().UTC()
	query := `INSERT INTO product_tax_settings (
			product_id, applicable, rate, regime, cess_rate, classification_code,
			category, reverse_charge, place_of_supply_code, updated_at)
		SELECT id, $2, $3, $4, $5, $6, $7, $8, $9, $10 FROM products WHERE id = $1
		ON CONFLICT (product_id) DO UPDATE SET
			applicable = EXCLUDED.applicable,
			rate = EXCLUDED.rate,
			regime = EXCLUDED.regime,
			cess_rate = EXCLUDED.cess_rate,
			classification_code = EXCLUDED.classification_code,
			category = EXCLUDED.category,
			reverse_charge = EXCLUDED.reverse_charge,
			place_of_supply_code = EXCLUDED.place_of_supply_code,
			updated_at = EXCLUDED.updated_at`

	written := 0
	for _, id := range update.ItemIDs {
		result, err := tx.ExecContext(ctx, query,
			id, cfg.Applicable, cfg.Rate, string(cfg.Regime), cfg.CessRate, cfg.ClassificationCode,
			string(cfg.Category), cfg.ReverseCharge, cfg.PlaceOfSupplyCode, now)
		if err != nil {
			return 0, fmt.Errorf("taxSettingsRepo.BulkUpdate item %s: %w", id, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("taxSettingsRepo.BulkUpdate rows affected: %w", err)
		}
		if n == 0 && !update.BulkUpdate {
			return 0, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		written += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("taxSettingsRepo.BulkUpdate commit: %w", err)
	}
	return written, nil
}

func (r *taxSettingsRepo) Get(ctx context.Context, itemID string) (*domain.TaxConfig, error) {
	var cfg domain.TaxConfig
	err := r.db.GetContext(ctx, &cfg,
		`SELECT applicable, rate, regime, cess_rate, classification_code, category,
			reverse_charge, place_of_supply_code
		 FROM product_tax_settings WHERE product_id = $1`, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxSettingsRepo.Get: %w", err)
	}
	return &cfg, nil
}

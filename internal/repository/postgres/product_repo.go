package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"petledger/internal/domain"
	"petledger/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductSubmitter.
func NewProductRepo(db *sqlx.DB) port.ProductSubmitter {
	return &productRepo{db: db}
}

const insertProduct = `INSERT INTO products (
		id, name, sku, category, quantity, price, brand, description,
		min_stock_level, pet_species, requires_prescription, is_active,
		created_at, updated_at)
	VALUES (
		:id, :name, :sku, :category, :quantity, :price, :brand, :description,
		:min_stock_level, :pet_species, :requires_prescription, :is_active,
		:created_at, :updated_at)`

type productRow struct {
	domain.Product
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SubmitProducts inserts every product inside one transaction. Each row runs
// under its own savepoint so a rejected row (for example a SKU that already
// exists) is rolled back and counted without aborting the rest.
func (r *productRepo) SubmitProducts(ctx context.Context, products []domain.Product) (*domain.SubmitResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("productRepo.SubmitProducts begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res := &domain.SubmitResult{}
	now := time.Now().UTC()
	for i := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := productRow{Product: products[i], ID: uuid.New(), CreatedAt: now, UpdatedAt: now}

		if _, err := tx.ExecContext(ctx, "SAVEPOINT product_row"); err != nil {
			return nil, fmt.Errorf("productRepo.SubmitProducts savepoint: %w", err)
		}
		if _, err := tx.NamedExecContext(ctx, insertProduct, row); err != nil {
			log.Printf("productRepo.SubmitProducts: rejected sku %q: %v", row.SKU, err)
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT product_row"); rbErr != nil {
				return nil, fmt.Errorf("productRepo.SubmitProducts rollback to savepoint: %w", rbErr)
			}
			res.Failed++
			continue
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT product_row"); err != nil {
			return nil, fmt.Errorf("productRepo.SubmitProducts release: %w", err)
		}
		res.Successful++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("productRepo.SubmitProducts commit: %w", err)
	}
	return res, nil
}

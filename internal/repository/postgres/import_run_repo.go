package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"petledger/internal/domain"
	"petledger/internal/port"
)

type importRunRepo struct {
	db *sqlx.DB
}

// NewImportRunRepo creates a new PostgreSQL-backed ImportRunRepository.
func NewImportRunRepo(db *sqlx.DB) port.ImportRunRepository {
	return &importRunRepo{db: db}
}

func (r *importRunRepo) Upsert(ctx context.Context, run *domain.ImportRun) error {
	now := time.Now().UTC()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now

	query := `INSERT INTO import_runs (
			id, file_name, archive_key, state, total_rows, valid_rows, invalid_rows,
			warned_rows, successful, failed, error_message, created_at, updated_at)
		VALUES (
			:id, :file_name, :archive_key, :state, :total_rows, :valid_rows, :invalid_rows,
			:warned_rows, :successful, :failed, :error_message, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			archive_key = EXCLUDED.archive_key,
			state = EXCLUDED.state,
			total_rows = EXCLUDED.total_rows,
			valid_rows = EXCLUDED.valid_rows,
			invalid_rows = EXCLUDED.invalid_rows,
			warned_rows = EXCLUDED.warned_rows,
			successful = EXCLUDED.successful,
			failed = EXCLUDED.failed,
			error_message = EXCLUDED.error_message,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("importRunRepo.Upsert: %w", err)
	}
	return nil
}

func (r *importRunRepo) ListRecent(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []domain.ImportRun
	err := r.db.SelectContext(ctx, &runs,
		"SELECT * FROM import_runs ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("importRunRepo.ListRecent: %w", err)
	}
	return runs, nil
}

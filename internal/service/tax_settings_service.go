package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"petledger/internal/domain"
	"petledger/internal/port"
	"petledger/internal/tax"
	"petledger/internal/telemetry"
)

// TaxSettingsResult reports a saved tax-settings update.
type TaxSettingsResult struct {
	Updated  int      `json:"updated"`
	Warnings []string `json:"warnings"`
}

// TaxSettingsService defines the per-item tax configuration contract.
type TaxSettingsService interface {
	Update(ctx context.Context, update domain.TaxSettingsUpdate) (*TaxSettingsResult, error)
	Get(ctx context.Context, itemID string) (*domain.TaxConfig, error)
}

type taxSettingsService struct {
	repo    port.TaxSettingsRepository
	hsn     *tax.HSNLookup
	metrics *telemetry.Metrics
}

// NewTaxSettingsService creates a new TaxSettingsService implementation.
// hsn may be nil, in which case master-list checks are skipped.
func NewTaxSettingsService(repo port.TaxSettingsRepository, hsn *tax.HSNLookup, metrics *telemetry.Metrics) TaxSettingsService {
	return &taxSettingsService{repo: repo, hsn: hsn, metrics: metrics}
}

// normalizeItemIDs parses every id as a UUID and returns the canonical
// forms with duplicates removed, keeping first-seen order.
func normalizeItemIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemID, raw)
		}
		key := id.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

func (s *taxSettingsService) Update(ctx context.Context, update domain.TaxSettingsUpdate) (*TaxSettingsResult, error) {
	if len(update.ItemIDs) == 0 {
		s.metrics.ObserveSettingsUpdate("rejected")
		return nil, domain.ErrNoItemsSelected
	}
	ids, err := normalizeItemIDs(update.ItemIDs)
	if err != nil {
		s.metrics.ObserveSettingsUpdate("rejected")
		return nil, err
	}
	if len(ids) > 1 && !update.BulkUpdate {
		s.metrics.ObserveSettingsUpdate("rejected")
		return nil, domain.ErrBulkUpdateRequired
	}

	cfg := update.GSTSettings
	cfg.ClassificationCode = strings.TrimSpace(cfg.ClassificationCode)
	if cfg.Regime == "" {
		cfg.Regime = domain.RegimeIntrastateDual
	}
	if err := cfg.Validate(); err != nil {
		s.metrics.ObserveSettingsUpdate("rejected")
		return nil, err
	}

	update.ItemIDs = ids
	update.GSTSettings = cfg
	n, err := s.repo.BulkUpdate(ctx, update)
	if err != nil {
		s.metrics.ObserveSettingsUpdate("rejected")
		return nil, fmt.Errorf("saving tax settings: %w", err)
	}
	s.metrics.ObserveSettingsUpdate("saved")

	warnings := tax.Advise(cfg, s.hsn)
	log.Printf("taxSettingsService.Update: saved %d of %d items (regime=%s rate=%s warnings=%d)",
		n, len(ids), cfg.Regime, cfg.Rate.String(), len(warnings))
	return &TaxSettingsResult{Updated: n, Warnings: warnings}, nil
}

func (s *taxSettingsService) Get(ctx context.Context, itemID string) (*domain.TaxConfig, error) {
	id, err := uuid.Parse(strings.TrimSpace(itemID))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemID, itemID)
	}
	return s.repo.Get(ctx, id.String())
}

package tax

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"petledger/internal/domain"
	"petledger/internal/port"
)

var (
	hsnPattern = regexp.MustCompile(`^\d{4}(\d{2}){0,2}$`)
	sacPattern = regexp.MustCompile(`^99\d{4}$`)
)

// ValidClassificationCode reports whether code is shaped like an HSN code
// (4, 6 or 8 digits) or a SAC code (6 digits starting with 99). An empty
// code is accepted; whether one is required depends on the category.
func ValidClassificationCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return true
	}
	return hsnPattern.MatchString(code) || sacPattern.MatchString(code)
}

// HSNRateEntry holds a valid GST rate and optional condition for an HSN code.
type HSNRateEntry struct {
	Rate          decimal.Decimal
	ConditionDesc string
}

// HSNLookup provides in-memory lookups over the HSN/SAC master list.
// It is immutable after construction and safe for concurrent access.
type HSNLookup struct {
	byCode map[string][]HSNRateEntry
}

// NewHSNLookup builds an HSNLookup from entries loaded from the database.
func NewHSNLookup(entries []port.HSNEntry) *HSNLookup {
	m := make(map[string][]HSNRateEntry, len(entries))
	for idx := range entries {
		e := &entries[idx]
		m[e.Code] = append(m[e.Code], HSNRateEntry{
			Rate:          e.GSTRate,
			ConditionDesc: e.ConditionDesc,
		})
	}
	return &HSNLookup{byCode: m}
}

// LoadHSNLookup reads the master list from repo into an HSNLookup.
func LoadHSNLookup(ctx context.Context, repo port.HSNRepository) (*HSNLookup, error) {
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading HSN master list: %w", err)
	}
	return NewHSNLookup(entries), nil
}

// Len returns the number of distinct codes loaded.
func (h *HSNLookup) Len() int {
	if h == nil {
		return 0
	}
	return len(h.byCode)
}

// Rates returns the rate entries for code, falling back 8→6→4 digit prefixes.
func (h *HSNLookup) Rates(code string) []HSNRateEntry {
	if h.Len() == 0 || code == "" {
		return nil
	}
	if rates, ok := h.byCode[code]; ok {
		return rates
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if rates, ok := h.byCode[code[:prefixLen]]; ok {
				return rates
			}
		}
	}
	return nil
}

// Exists reports whether code or one of its prefixes is in the master list.
func (h *HSNLookup) Exists(code string) bool {
	return len(h.Rates(code)) > 0
}

// RateMatches checks rate against the valid rates for code.
func (h *HSNLookup) RateMatches(code string, rate decimal.Decimal) (matched bool, validRates []HSNRateEntry) {
	validRates = h.Rates(code)
	if len(validRates) == 0 {
		return false, nil
	}
	for idx := range validRates {
		if validRates[idx].Rate.Equal(rate) {
			return true, validRates
		}
	}
	return false, validRates
}

// Advise returns non-blocking remarks about cfg: a rate outside the GST
// slabs, a malformed classification code, or a code/rate pair that
// disagrees with the master list. lookup may be nil.
func Advise(cfg domain.TaxConfig, lookup *HSNLookup) []string {
	warnings := []string{}
	if !cfg.Applicable {
		return warnings
	}
	if !cfg.Regime.SuppressesRate() && !IsStandardRate(cfg.Rate) {
		warnings = append(warnings, fmt.Sprintf("Rate %s%% is not a standard GST slab", cfg.Rate.String()))
	}

	code := strings.TrimSpace(cfg.ClassificationCode)
	if code == "" {
		return warnings
	}
	if !ValidClassificationCode(code) {
		warnings = append(warnings, fmt.Sprintf("Classification code %q is not a valid HSN or SAC code", code))
		return warnings
	}
	if lookup.Len() == 0 || cfg.Regime.SuppressesRate() {
		return warnings
	}

	matched, valid := lookup.RateMatches(code, cfg.Rate)
	switch {
	case len(valid) == 0:
		warnings = append(warnings, fmt.Sprintf("HSN/SAC code %q not found in master list", code))
	case !matched:
		rates := make([]string, 0, len(valid))
		for _, r := range valid {
			rates = append(rates, r.Rate.String()+"%")
		}
		warnings = append(warnings, fmt.Sprintf("Rate %s%% does not match HSN/SAC %q (expected %s)",
			cfg.Rate.String(), code, strings.Join(rates, " or ")))
	}
	return warnings
}

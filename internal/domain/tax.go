package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRegime determines how a GST rate is split into components.
type TaxRegime string

const (
	RegimeIntrastateDual   TaxRegime = "intrastate_dual"
	RegimeInterstateSingle TaxRegime = "interstate_single"
	RegimeExempt           TaxRegime = "exempt"
	RegimeNilRated         TaxRegime = "nil_rated"
	RegimeZeroRated        TaxRegime = "zero_rated"
)

// regimeAliases maps accepted spellings to a canonical regime.
var regimeAliases = map[string]TaxRegime{
	"intrastate_dual":   RegimeIntrastateDual,
	"intrastate":        RegimeIntrastateDual,
	"cgst_sgst":         RegimeIntrastateDual,
	"interstate_single": RegimeInterstateSingle,
	"interstate":        RegimeInterstateSingle,
	"igst":              RegimeInterstateSingle,
	"exempt":            RegimeExempt,
	"nil_rated":         RegimeNilRated,
	"nil":               RegimeNilRated,
	"zero_rated":        RegimeZeroRated,
	"zero":              RegimeZeroRated,
}

// ParseTaxRegime resolves a regime name or alias, case-insensitively.
func ParseTaxRegime(s string) (TaxRegime, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if r, ok := regimeAliases[key]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown tax regime %q", ErrInvalidTaxConfig, s)
}

// Valid reports whether r is one of the canonical regimes.
func (r TaxRegime) Valid() bool {
	switch r {
	case RegimeIntrastateDual, RegimeInterstateSingle, RegimeExempt, RegimeNilRated, RegimeZeroRated:
		return true
	}
	return false
}

// SuppressesRate is true for regimes where the configured rate is ignored.
func (r TaxRegime) SuppressesRate() bool {
	return r == RegimeExempt || r == RegimeNilRated || r == RegimeZeroRated
}

// TaxCategory says which classification code family applies to an item.
type TaxCategory string

const (
	TaxCategoryGoods    TaxCategory = "goods"
	TaxCategoryServices TaxCategory = "services"
	TaxCategoryNone     TaxCategory = "none"
)

// TaxConfig is the immutable tax configuration of an item or line.
// Rate and CessRate are percentages.
type TaxConfig struct {
	Applicable         bool            `json:"applicable" db:"applicable"`
	Rate               decimal.Decimal `json:"rate" db:"rate"`
	Regime             TaxRegime       `json:"regime" db:"regime"`
	CessRate           decimal.Decimal `json:"cess_rate" db:"cess_rate"`
	ClassificationCode string          `json:"classification_code" db:"classification_code"`
	Category           TaxCategory     `json:"category" db:"category"`
	ReverseCharge      bool            `json:"reverse_charge" db:"reverse_charge"`
	PlaceOfSupplyCode  string          `json:"place_of_supply_code" db:"place_of_supply_code"`
}

var hundred = decimal.NewFromInt(100)

// ValidateRates checks the rate ranges and the regime only. It is what a
// preview computation may enforce; classification codes are not required.
func (c TaxConfig) ValidateRates() error {
	if c.Rate.IsNegative() || c.Rate.GreaterThan(hundred) {
		return fmt.Errorf("%w: rate %s", ErrRateOutOfRange, c.Rate.String())
	}
	if c.CessRate.IsNegative() || c.CessRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: cess rate %s", ErrRateOutOfRange, c.CessRate.String())
	}
	if c.Regime != "" && !c.Regime.Valid() {
		return fmt.Errorf("%w: unknown regime %q", ErrInvalidTaxConfig, c.Regime)
	}
	return nil
}

// Validate enforces the save-time invariants of a tax configuration.
// Breakdown computation never calls this.
func (c TaxConfig) Validate() error {
	if err := c.ValidateRates(); err != nil {
		return err
	}
	if c.Applicable && strings.TrimSpace(c.ClassificationCode) == "" {
		switch c.Category {
		case TaxCategoryGoods:
			return fmt.Errorf("%w: HSN code required for goods", ErrClassificationRequired)
		case TaxCategoryServices:
			return fmt.Errorf("%w: SAC code required for services", ErrClassificationRequired)
		}
	}
	return nil
}

// TaxComponents holds the individual GST components of a breakdown.
type TaxComponents struct {
	CGST decimal.Decimal `json:"cgst" yaml:"cgst"`
	SGST decimal.Decimal `json:"sgst" yaml:"sgst"`
	IGST decimal.Decimal `json:"igst" yaml:"igst"`
	Cess decimal.Decimal `json:"cess" yaml:"cess"`
}

// TaxBreakdown is a tax-inclusive price split into base and components.
type TaxBreakdown struct {
	BasePrice         decimal.Decimal `json:"base_price" yaml:"base_price"`
	Components        TaxComponents   `json:"components" yaml:"components"`
	TotalTax          decimal.Decimal `json:"total_tax" yaml:"total_tax"`
	TotalPriceWithTax decimal.Decimal `json:"total_price_with_tax" yaml:"total_price_with_tax"`
}

// TaxSettingsUpdate is what the tax-settings persistence boundary accepts.
type TaxSettingsUpdate struct {
	ItemIDs     []string  `json:"item_ids"`
	GSTSettings TaxConfig `json:"gst_settings"`
	BulkUpdate  bool      `json:"bulk_update"`
}

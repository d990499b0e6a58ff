package handler

import (
	"fmt"

	"github.com/shopspring/decimal"

	"petledger/internal/domain"
	"petledger/internal/tax"
)

// TaxConfigRequest is the wire form of a tax configuration. Regime may be
// left empty when both state codes are given; it is then derived from them.
type TaxConfigRequest struct {
	Applicable         *bool           `json:"applicable"`
	Rate               decimal.Decimal `json:"rate"`
	Regime             string          `json:"regime"`
	CessRate           decimal.Decimal `json:"cess_rate"`
	ClassificationCode string          `json:"classification_code" binding:"omitempty,hsn_sac"`
	Category           string          `json:"category" binding:"omitempty,oneof=goods services none"`
	ReverseCharge      bool            `json:"reverse_charge"`
	SupplierStateCode  string          `json:"supplier_state_code" binding:"omitempty,state_code"`
	PlaceOfSupplyCode  string          `json:"place_of_supply_code" binding:"omitempty,state_code"`
}

// ToDomain resolves the request into a TaxConfig. Applicable defaults to true.
func (r *TaxConfigRequest) ToDomain() (domain.TaxConfig, error) {
	cfg := domain.TaxConfig{
		Applicable:         true,
		Rate:               r.Rate,
		CessRate:           r.CessRate,
		ClassificationCode: r.ClassificationCode,
		Category:           domain.TaxCategory(r.Category),
		ReverseCharge:      r.ReverseCharge,
		PlaceOfSupplyCode:  r.PlaceOfSupplyCode,
	}
	if r.Applicable != nil {
		cfg.Applicable = *r.Applicable
	}
	if cfg.Category == "" {
		cfg.Category = domain.TaxCategoryGoods
	}

	if r.Regime == "" {
		cfg.Regime = tax.RegimeFor(r.SupplierStateCode, r.PlaceOfSupplyCode)
		return cfg, nil
	}
	regime, err := domain.ParseTaxRegime(r.Regime)
	if err != nil {
		return cfg, err
	}
	cfg.Regime = regime
	return cfg, nil
}

// BreakdownRequest is the body of POST /tax/breakdown.
type BreakdownRequest struct {
	Price     decimal.Decimal  `json:"price"`
	TaxConfig TaxConfigRequest `json:"tax_config"`
}

// LineItemRequest is one line of POST /sales/lines.
type LineItemRequest struct {
	Quantity     int              `json:"quantity" binding:"gt=0"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	Discount     decimal.Decimal  `json:"discount"`
	DiscountType string           `json:"discount_type" binding:"omitempty,oneof=percentage percent % fixed amount"`
	TaxConfig    TaxConfigRequest `json:"tax_config"`
}

// SaleLinesRequest is the body of POST /sales/lines.
type SaleLinesRequest struct {
	Items []LineItemRequest `json:"items" binding:"dive"`
}

// ToDomain converts and range-checks the lines. Money inputs must not be
// negative; the calculators themselves do not check.
func (r *SaleLinesRequest) ToDomain() ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(r.Items))
	for i := range r.Items {
		in := &r.Items[i]
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("items[%d]: unit_price must not be negative", i)
		}
		if in.Discount.IsNegative() {
			return nil, fmt.Errorf("items[%d]: discount must not be negative", i)
		}
		dt, err := domain.ParseDiscountType(in.DiscountType)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		cfg, err := in.TaxConfig.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, domain.LineItem{
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			Discount:     in.Discount,
			DiscountType: dt,
			TaxConfig:    cfg,
		})
	}
	return items, nil
}

// TaxSettingsRequest is the body of PUT /items/tax-settings.
type TaxSettingsRequest struct {
	ItemIDs     []string         `json:"item_ids" binding:"dive,required"`
	GSTSettings TaxConfigRequest `json:"gst_settings"`
	BulkUpdate  bool             `json:"bulk_update"`
}

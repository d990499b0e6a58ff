package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType says how LineItem.Discount is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ParseDiscountType accepts "percentage"/"percent"/"%" and "fixed"/"amount".
func ParseDiscountType(s string) (DiscountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentage", "percent", "%":
		return DiscountPercentage, nil
	case "fixed", "amount", "":
		return DiscountFixed, nil
	}
	return "", fmt.Errorf("unknown discount type %q", s)
}

// LineItem is one line of a sale transaction.
type LineItem struct {
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType DiscountType    `json:"discount_type"`
	TaxConfig    TaxConfig       `json:"tax_config"`
}

// LineResult is the computed money breakdown of one LineItem.
type LineResult struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// SaleTotals are invoice-level totals. They are always derived from the
// current set of lines and never stored on their own.
type SaleTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTaxable  decimal.Decimal `json:"total_taxable"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

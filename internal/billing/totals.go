package billing

import (
	"github.com/shopspring/decimal"

	"petledger/internal/domain"
	"petledger/internal/tax"
)

// Aggregate computes invoice totals over items. An empty slice gives zero
// totals; item order does not matter.
func Aggregate(items []domain.LineItem) domain.SaleTotals {
	lines := make([]domain.LineResult, 0, len(items))
	for i := range items {
		lines = append(lines, ComputeLine(items[i]))
	}
	return AggregateLines(lines)
}

// AggregateLines sums already-computed line results.
func AggregateLines(lines []domain.LineResult) domain.SaleTotals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	taxTotal := decimal.Zero
	for i := range lines {
		l := &lines[i]
		subtotal = subtotal.Add(l.Subtotal)
		discount = discount.Add(l.DiscountAmount)
		taxTotal = taxTotal.Add(l.TaxAmount)
	}

	taxable := subtotal.Sub(discount)
	return domain.SaleTotals{
		Subtotal:      subtotal,
		TotalDiscount: discount,
		TotalTaxable:  taxable,
		TotalTax:      taxTotal,
		GrandTotal:    taxable.Add(taxTotal),
	}
}

// Summary is a priced sale: every line with its components plus totals.
type Summary struct {
	Lines  []PricedLine      `json:"lines"`
	Totals domain.SaleTotals `json:"totals"`
}

// PricedLine pairs a line result with its component split.
type PricedLine struct {
	domain.LineResult
	Components domain.TaxComponents `json:"components"`
}

// Price computes every line and the totals in one pass.
func Price(items []domain.LineItem) Summary {
	s := Summary{Lines: make([]PricedLine, 0, len(items))}
	results := make([]domain.LineResult, 0, len(items))
	for i := range items {
		res := ComputeLine(items[i])
		results = append(results, res)
		s.Lines = append(s.Lines, PricedLine{
			LineResult: res,
			Components: tax.SplitTaxAmount(res.TaxAmount, items[i].TaxConfig.Regime),
		})
	}
	s.Totals = AggregateLines(results)
	return s
}

// Package billing computes sale line amounts and invoice totals.
package billing

import (
	"github.com/shopspring/decimal"

	"petledger/internal/domain"
	"petledger/internal/tax"
)

var hundred = decimal.NewFromInt(100)

// ComputeLine derives subtotal, discount, taxable amount, tax and total for
// one line. The discount is not clamped: a discount above the subtotal gives
// a negative taxable amount, which is how credit and return lines are
// expressed. Tax uses Rate as the combined rate; the regime only affects
// component display (see SplitLineTax).
func ComputeLine(item domain.LineItem) domain.LineResult {
	subtotal := decimal.NewFromInt(int64(item.Quantity)).Mul(item.UnitPrice)

	var discount decimal.Decimal
	if item.DiscountType == domain.DiscountPercentage {
		discount = subtotal.Mul(item.Discount).Div(hundred)
	} else {
		discount = item.Discount
	}

	taxable := subtotal.Sub(discount)

	taxAmount := decimal.Zero
	if item.TaxConfig.Applicable {
		taxAmount = taxable.Mul(item.TaxConfig.Rate).Div(hundred)
	}

	return domain.LineResult{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      taxAmount,
		LineTotal:      taxable.Add(taxAmount),
	}
}

// SplitLineTax divides a line's TaxAmount into GST components using the
// regime of its tax configuration. Cess is not part of a line's tax, so the
// components always sum to the rounded TaxAmount.
func SplitLineTax(item domain.LineItem) domain.TaxComponents {
	return tax.SplitTaxAmount(ComputeLine(item).TaxAmount, item.TaxConfig.Regime)
}

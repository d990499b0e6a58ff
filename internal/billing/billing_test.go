package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petledger/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

// sampleLine: qty 2 × 50, 10% discount, 18% GST.
func sampleLine() domain.LineItem {
	return domain.LineItem{
		Quantity:     2,
		UnitPrice:    d("50"),
		Discount:     d("10"),
		DiscountType: domain.DiscountPercentage,
		TaxConfig:    domain.TaxConfig{Applicable: true, Rate: d("18"), Regime: domain.RegimeIntrastateDual},
	}
}

func TestComputeLine_PercentageDiscount(t *testing.T) {
	res := ComputeLine(sampleLine())

	assertAmount(t, "100", res.Subtotal, "subtotal")
	assertAmount(t, "10", res.DiscountAmount, "discount")
	assertAmount(t, "90", res.TaxableAmount, "taxable")
	assertAmount(t, "16.2", res.TaxAmount, "tax")
	assertAmount(t, "106.2", res.LineTotal, "total")
}

func TestComputeLine_FixedDiscount(t *testing.T) {
	item := sampleLine()
	item.DiscountType = domain.DiscountFixed
	item.Discount = d("25")

	res := ComputeLine(item)
	assertAmount(t, "75", res.TaxableAmount, "taxable")
	assertAmount(t, "13.5", res.TaxAmount, "tax")
	assertAmount(t, "88.5", res.LineTotal, "total")
}

func TestComputeLine_NotApplicable(t *testing.T) {
	item := sampleLine()
	item.TaxConfig.Applicable = false

	res := ComputeLine(item)
	assert.True(t, res.TaxAmount.IsZero())
	assertAmount(t, "90", res.LineTotal, "total")
}

func TestComputeLine_CombinedRateIgnoresRegime(t *testing.T) {
	intra := sampleLine()
	inter := sampleLine()
	inter.TaxConfig.Regime = domain.RegimeInterstateSingle

	assert.True(t, ComputeLine(intra).TaxAmount.Equal(ComputeLine(inter).TaxAmount))
}

func TestComputeLine_DiscountAboveSubtotal(t *testing.T) {
	item := sampleLine()
	item.DiscountType = domain.DiscountFixed
	item.Discount = d("150")

	res := ComputeLine(item)
	assertAmount(t, "-50", res.TaxableAmount, "taxable")
	assertAmount(t, "-9", res.TaxAmount, "tax")
	assertAmount(t, "-59", res.LineTotal, "total")
}

func TestSplitLineTax(t *testing.T) {
	c := SplitLineTax(sampleLine())
	assert.Equal(t, "8.10", c.CGST.StringFixed(2))
	assert.Equal(t, "8.10", c.SGST.StringFixed(2))
	assert.True(t, c.IGST.IsZero())
}

func TestSplitLineTax_CessStaysOutOfLineTax(t *testing.T) {
	item := domain.LineItem{
		Quantity:     1,
		UnitPrice:    d("100"),
		DiscountType: domain.DiscountFixed,
		TaxConfig: domain.TaxConfig{
			Applicable: true,
			Rate:       d("28"),
			CessRate:   d("12"),
			Regime:     domain.RegimeIntrastateDual,
		},
	}

	res := ComputeLine(item)
	c := SplitLineTax(item)
	assertAmount(t, "28", res.TaxAmount, "tax")
	assertAmount(t, "14", c.CGST, "cgst")
	assertAmount(t, "14", c.SGST, "sgst")
	assert.True(t, c.Cess.IsZero())

	sum := c.CGST.Add(c.SGST).Add(c.IGST).Add(c.Cess)
	assertAmount(t, res.TaxAmount.String(), sum, "component sum")
	assertAmount(t, res.LineTotal.String(), res.TaxableAmount.Add(sum), "line total")
}

func TestPrice_ComponentsMatchLineTax(t *testing.T) {
	inter := sampleLine()
	inter.TaxConfig.Regime = domain.RegimeInterstateSingle
	inter.TaxConfig.CessRate = d("5")

	s := Price([]domain.LineItem{sampleLine(), inter})
	require.Len(t, s.Lines, 2)
	for i, l := range s.Lines {
		sum := l.Components.CGST.Add(l.Components.SGST).Add(l.Components.IGST).Add(l.Components.Cess)
		assertAmount(t, l.TaxAmount.Round(2).String(), sum, "line components")
		assert.True(t, l.Components.Cess.IsZero(), "line %d", i)
	}
	assertAmount(t, "16.2", s.Lines[1].Components.IGST, "igst")
}

func TestAggregate_Empty(t *testing.T) {
	for _, items := range [][]domain.LineItem{nil, {}} {
		totals := Aggregate(items)
		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.TotalDiscount.IsZero())
		assert.True(t, totals.TotalTaxable.IsZero())
		assert.True(t, totals.TotalTax.IsZero())
		assert.True(t, totals.GrandTotal.IsZero())
	}
}

func TestAggregate_TwoIdenticalLines(t *testing.T) {
	totals := Aggregate([]domain.LineItem{sampleLine(), sampleLine()})

	assertAmount(t, "200", totals.Subtotal, "subtotal")
	assertAmount(t, "20", totals.TotalDiscount, "discount")
	assertAmount(t, "180", totals.TotalTaxable, "taxable")
	assertAmount(t, "32.4", totals.TotalTax, "tax")
	assertAmount(t, "212.4", totals.GrandTotal, "grand total")
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := sampleLine()
	b := domain.LineItem{Quantity: 3, UnitPrice: d("19.99"), Discount: d("5"), DiscountType: domain.DiscountFixed,
		TaxConfig: domain.TaxConfig{Applicable: true, Rate: d("5")}}
	c := domain.LineItem{Quantity: 1, UnitPrice: d("250"), DiscountType: domain.DiscountFixed}

	forward := Aggregate([]domain.LineItem{a, b, c})
	reverse := Aggregate([]domain.LineItem{c, b, a})

	assert.True(t, forward.GrandTotal.Equal(reverse.GrandTotal))
	assert.True(t, forward.TotalTax.Equal(reverse.TotalTax))
	assert.True(t, forward.TotalTaxable.Equal(reverse.TotalTaxable))
}

func TestPrice(t *testing.T) {
	s := Price([]domain.LineItem{sampleLine(), sampleLine()})
	require.Len(t, s.Lines, 2)
	assertAmount(t, "106.2", s.Lines[0].LineTotal, "line total")
	assert.Equal(t, "8.10", s.Lines[1].Components.SGST.StringFixed(2))
	assertAmount(t, "212.4", s.Totals.GrandTotal, "grand total")
}

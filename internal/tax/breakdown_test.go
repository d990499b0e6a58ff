package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"petledger/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(Places), msgAndArgs...)
}

func TestComputeBreakdown_IntrastateDual(t *testing.T) {
	b := ComputeBreakdown(d("118"), domain.TaxConfig{
		Applicable: true, Rate: d("18"), Regime: domain.RegimeIntrastateDual, CessRate: decimal.Zero,
	})

	assertMoney(t, "100.00", b.BasePrice)
	assertMoney(t, "9.00", b.Components.CGST)
	assertMoney(t, "9.00", b.Components.SGST)
	assertMoney(t, "0.00", b.Components.IGST)
	assertMoney(t, "0.00", b.Components.Cess)
	assertMoney(t, "18.00", b.TotalTax)
	assertMoney(t, "118.00", b.TotalPriceWithTax)
}

func TestComputeBreakdown_InterstateSingle(t *testing.T) {
	b := ComputeBreakdown(d("112"), domain.TaxConfig{
		Applicable: true, Rate: d("12"), Regime: domain.RegimeInterstateSingle,
	})

	assertMoney(t, "100.00", b.BasePrice)
	assertMoney(t, "0.00", b.Components.CGST)
	assertMoney(t, "0.00", b.Components.SGST)
	assertMoney(t, "12.00", b.Components.IGST)
	assertMoney(t, "12.00", b.TotalTax)
}

func TestComputeBreakdown_NotApplicable(t *testing.T) {
	b := ComputeBreakdown(d("100"), domain.TaxConfig{
		Applicable: false, Rate: d("18"), Regime: domain.RegimeIntrastateDual, CessRate: d("12"),
	})

	assertMoney(t, "100.00", b.BasePrice)
	assertMoney(t, "0.00", b.Components.CGST)
	assertMoney(t, "0.00", b.Components.SGST)
	assertMoney(t, "0.00", b.Components.IGST)
	assertMoney(t, "0.00", b.Components.Cess)
	assertMoney(t, "0.00", b.TotalTax)
	assertMoney(t, "100.00", b.TotalPriceWithTax)
}

func TestComputeBreakdown_SuppressingRegimes(t *testing.T) {
	prices := []string{"0", "1", "99.99", "118", "5000.55"}
	rates := []string{"0", "5", "18", "28"}

	for _, regime := range []domain.TaxRegime{domain.RegimeExempt, domain.RegimeNilRated, domain.RegimeZeroRated} {
		for _, p := range prices {
			for _, r := range rates {
				b := ComputeBreakdown(d(p), domain.TaxConfig{Applicable: true, Rate: d(r), Regime: regime})
				assert.True(t, b.Components.CGST.IsZero(), "%s p=%s r=%s cgst", regime, p, r)
				assert.True(t, b.Components.SGST.IsZero(), "%s p=%s r=%s sgst", regime, p, r)
				assert.True(t, b.Components.IGST.IsZero(), "%s p=%s r=%s igst", regime, p, r)
				assert.True(t, b.Components.Cess.IsZero(), "%s p=%s r=%s cess", regime, p, r)
				assert.True(t, b.TotalTax.IsZero(), "%s p=%s r=%s total", regime, p, r)
			}
		}
	}
}

func TestComputeBreakdown_Cess(t *testing.T) {
	t.Run("dual_with_cess", func(t *testing.T) {
		// 28% GST + 12% cess on a base of 100 → 140 inclusive
		b := ComputeBreakdown(d("140"), domain.TaxConfig{
			Applicable: true, Rate: d("28"), CessRate: d("12"), Regime: domain.RegimeIntrastateDual,
		})
		assertMoney(t, "100.00", b.BasePrice)
		assertMoney(t, "14.00", b.Components.CGST)
		assertMoney(t, "14.00", b.Components.SGST)
		assertMoney(t, "12.00", b.Components.Cess)
		assertMoney(t, "40.00", b.TotalTax)
	})

	t.Run("exempt_still_levies_cess", func(t *testing.T) {
		b := ComputeBreakdown(d("110"), domain.TaxConfig{
			Applicable: true, Rate: d("18"), CessRate: d("10"), Regime: domain.RegimeExempt,
		})
		// base divides by the full 1 + r + c even though r is suppressed
		assertMoney(t, "85.94", b.BasePrice)
		assertMoney(t, "8.59", b.Components.Cess)
		assertMoney(t, "8.59", b.TotalTax)
	})
}

func TestComputeBreakdown_IndependentRounding(t *testing.T) {
	b := ComputeBreakdown(d("99.99"), domain.TaxConfig{
		Applicable: true, Rate: d("18"), Regime: domain.RegimeIntrastateDual,
	})

	// 99.99 / 1.18 = 84.737288...
	assertMoney(t, "84.74", b.BasePrice)
	assertMoney(t, "7.63", b.Components.CGST)
	assertMoney(t, "7.63", b.Components.SGST)
	assertMoney(t, "15.25", b.TotalTax)
	assertMoney(t, "99.99", b.TotalPriceWithTax)

	drift := b.BasePrice.Add(b.TotalTax).Sub(b.TotalPriceWithTax).Abs()
	assert.True(t, drift.LessThanOrEqual(d("0.05")), "drift %s", drift)
}

func TestComputeBreakdown_UnknownRegimeOnlyCess(t *testing.T) {
	b := ComputeBreakdown(d("105"), domain.TaxConfig{Applicable: true, CessRate: d("5")})
	assertMoney(t, "100.00", b.BasePrice)
	assertMoney(t, "5.00", b.Components.Cess)
	assertMoney(t, "5.00", b.TotalTax)
}

func TestComputeBreakdown_DoesNotMutateInput(t *testing.T) {
	cfg := domain.TaxConfig{Applicable: true, Rate: d("18"), Regime: domain.RegimeIntrastateDual}
	price := d("118")
	first := ComputeBreakdown(price, cfg)
	second := ComputeBreakdown(price, cfg)

	assert.Equal(t, "118", price.String())
	assert.Equal(t, "18", cfg.Rate.String())
	assert.True(t, first.BasePrice.Equal(second.BasePrice))
	assert.True(t, first.TotalTax.Equal(second.TotalTax))
}

func TestSplitTaxAmount(t *testing.T) {
	t.Run("intrastate", func(t *testing.T) {
		c := SplitTaxAmount(d("16.2"), domain.RegimeIntrastateDual)
		assertMoney(t, "8.10", c.CGST)
		assertMoney(t, "8.10", c.SGST)
		assertMoney(t, "0.00", c.IGST)
		assertMoney(t, "0.00", c.Cess)
	})

	t.Run("intrastate_odd_cent", func(t *testing.T) {
		c := SplitTaxAmount(d("0.05"), domain.RegimeIntrastateDual)
		assertMoney(t, "0.03", c.CGST)
		assertMoney(t, "0.02", c.SGST)
		assertMoney(t, "0.05", c.CGST.Add(c.SGST))
	})

	t.Run("interstate", func(t *testing.T) {
		c := SplitTaxAmount(d("16.2"), domain.RegimeInterstateSingle)
		assertMoney(t, "16.20", c.IGST)
		assert.True(t, c.CGST.IsZero())
	})

	t.Run("zero", func(t *testing.T) {
		c := SplitTaxAmount(decimal.Zero, domain.RegimeIntrastateDual)
		assert.True(t, c.CGST.Add(c.SGST).Add(c.IGST).Add(c.Cess).IsZero())
	})
}

// Package tax derives GST components from tax-inclusive prices.
package tax

import (
	"github.com/shopspring/decimal"

	"petledger/internal/domain"
)

// Places is the precision of every monetary output.
const Places = 2

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ComputeBreakdown splits a tax-inclusive price into its base amount and GST
// components under cfg. Every output field is rounded on its own, so
// BasePrice+TotalTax can be a cent away from TotalPriceWithTax, which always
// echoes the input price.
//
// Negative prices and out-of-range rates are not checked here.
func ComputeBreakdown(price decimal.Decimal, cfg domain.TaxConfig) domain.TaxBreakdown {
	if !cfg.Applicable {
		return domain.TaxBreakdown{
			BasePrice:         price.Round(Places),
			Components:        zeroComponents(),
			TotalTax:          decimal.Zero,
			TotalPriceWithTax: price.Round(Places),
		}
	}

	r := cfg.Rate.Div(hundred)
	c := cfg.CessRate.Div(hundred)
	base := price.Div(decimal.NewFromInt(1).Add(r).Add(c))

	comp := splitComponents(base, r, c, cfg.Regime)
	total := comp.CGST.Add(comp.SGST).Add(comp.IGST).Add(comp.Cess)

	return domain.TaxBreakdown{
		BasePrice:         base.Round(Places),
		Components:        roundComponents(comp),
		TotalTax:          total.Round(Places),
		TotalPriceWithTax: price.Round(Places),
	}
}

// splitComponents applies regime rules to an exclusive base amount. r and c
// are fractions, not percentages. Results are unrounded.
func splitComponents(base, r, c decimal.Decimal, regime domain.TaxRegime) domain.TaxComponents {
	comp := zeroComponents()
	switch regime {
	case domain.RegimeIntrastateDual:
		half := base.Mul(r).Div(two)
		comp.CGST = half
		comp.SGST = half
	case domain.RegimeInterstateSingle:
		comp.IGST = base.Mul(r)
	}
	// cess is levied under every applicable regime, exempt ones included
	comp.Cess = base.Mul(c)
	return comp
}

// SplitTaxAmount divides an already computed tax amount between the
// components of regime. Intrastate halves go to CGST and SGST, with any odd
// cent on SGST; every other regime reports the amount as IGST. Cess is always
// zero and the components sum to the rounded amount.
func SplitTaxAmount(amount decimal.Decimal, regime domain.TaxRegime) domain.TaxComponents {
	comp := zeroComponents()
	total := amount.Round(Places)
	if regime == domain.RegimeIntrastateDual {
		comp.CGST = amount.Div(two).Round(Places)
		comp.SGST = total.Sub(comp.CGST)
		return comp
	}
	comp.IGST = total
	return comp
}

func zeroComponents() domain.TaxComponents {
	return domain.TaxComponents{
		CGST: decimal.Zero,
		SGST: decimal.Zero,
		IGST: decimal.Zero,
		Cess: decimal.Zero,
	}
}

func roundComponents(c domain.TaxComponents) domain.TaxComponents {
	return domain.TaxComponents{
		CGST: c.CGST.Round(Places),
		SGST: c.SGST.Round(Places),
		IGST: c.IGST.Round(Places),
		Cess: c.Cess.Round(Places),
	}
}

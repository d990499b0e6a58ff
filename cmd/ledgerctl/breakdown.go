package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"petledger/internal/domain"
	"petledger/internal/hsnseed"
	"petledger/internal/tax"
)

type breakdownOptions struct {
	price         string
	rate          string
	cess          string
	regime        string
	hsn           string
	supplierState string
	placeOfSupply string
	exempt        bool
	hsnMaster     string
	format        string
}

// breakdownOutput is what `ledgerctl breakdown` prints.
type breakdownOutput struct {
	Price     decimal.Decimal     `json:"price" yaml:"price"`
	Regime    domain.TaxRegime    `json:"regime" yaml:"regime"`
	Breakdown domain.TaxBreakdown `json:"breakdown" yaml:"breakdown"`
	Warnings  []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newBreakdownCmd() *cobra.Command {
	var opts breakdownOptions
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Split a tax-inclusive price into base price and GST components",
		Example: `  ledgerctl breakdown --price 118 --rate 18
  ledgerctl breakdown --price 1180 --rate 18 --supplier-state 29 --place-of-supply 27 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := computeBreakdown(opts)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, out, out.writeText)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.price, "price", "", "tax-inclusive price")
	f.StringVar(&opts.rate, "rate", "0", "GST rate in percent")
	f.StringVar(&opts.cess, "cess", "0", "cess rate in percent")
	f.StringVar(&opts.regime, "regime", "", "intrastate_dual, interstate_single, exempt, nil_rated or zero_rated")
	f.StringVar(&opts.hsn, "hsn", "", "HSN or SAC code")
	f.StringVar(&opts.supplierState, "supplier-state", "", "supplier GST state code, used when --regime is empty")
	f.StringVar(&opts.placeOfSupply, "place-of-supply", "", "place of supply GST state code, used when --regime is empty")
	f.BoolVar(&opts.exempt, "not-applicable", false, "the item carries no GST")
	f.StringVar(&opts.hsnMaster, "hsn-master", "", "HSN/SAC master workbook to check the code and rate against")
	f.StringVarP(&opts.format, "output", "o", "text", "output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func computeBreakdown(opts breakdownOptions) (*breakdownOutput, error) {
	price, err := decimal.NewFromString(opts.price)
	if err != nil {
		return nil, fmt.Errorf("invalid --price %q", opts.price)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("--price must not be negative")
	}
	rate, err := decimal.NewFromString(opts.rate)
	if err != nil {
		return nil, fmt.Errorf("invalid --rate %q", opts.rate)
	}
	cess, err := decimal.NewFromString(opts.cess)
	if err != nil {
		return nil, fmt.Errorf("invalid --cess %q", opts.cess)
	}

	cfg := domain.TaxConfig{
		Applicable:         !opts.exempt,
		Rate:               rate,
		CessRate:           cess,
		ClassificationCode: opts.hsn,
		Category:           domain.TaxCategoryNone,
		PlaceOfSupplyCode:  opts.placeOfSupply,
	}
	if opts.hsn != "" {
		if !tax.ValidClassificationCode(opts.hsn) {
			return nil, fmt.Errorf("%q is not a valid HSN or SAC code", opts.hsn)
		}
		cfg.Category = domain.TaxCategoryGoods
	}
	if opts.regime == "" {
		cfg.Regime = tax.RegimeFor(opts.supplierState, opts.placeOfSupply)
	} else if cfg.Regime, err = domain.ParseTaxRegime(opts.regime); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := &breakdownOutput{
		Price:     price,
		Regime:    cfg.Regime,
		Breakdown: tax.ComputeBreakdown(price, cfg),
	}
	if opts.hsnMaster != "" {
		lookup, err := loadHSNMaster(opts.hsnMaster)
		if err != nil {
			return nil, err
		}
		out.Warnings = tax.Advise(cfg, lookup)
	}
	return out, nil
}

func loadHSNMaster(path string) (*tax.HSNLookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening HSN master: %w", err)
	}
	defer f.Close()
	entries, err := hsnseed.ReadWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("reading HSN master: %w", err)
	}
	return tax.NewHSNLookup(entries), nil
}

func (o *breakdownOutput) writeText(w io.Writer) error {
	b := o.Breakdown
	lines := []string{
		fmt.Sprintf("price        %s", o.Price.StringFixed(tax.Places)),
		fmt.Sprintf("regime       %s", o.Regime),
		fmt.Sprintf("base price   %s", b.BasePrice.StringFixed(tax.Places)),
		fmt.Sprintf("cgst         %s", b.Components.CGST.StringFixed(tax.Places)),
		fmt.Sprintf("sgst         %s", b.Components.SGST.StringFixed(tax.Places)),
		fmt.Sprintf("igst         %s", b.Components.IGST.StringFixed(tax.Places)),
		fmt.Sprintf("cess         %s", b.Components.Cess.StringFixed(tax.Places)),
		fmt.Sprintf("total tax    %s", b.TotalTax.StringFixed(tax.Places)),
	}
	for _, warning := range o.Warnings {
		lines = append(lines, "warning: "+warning)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

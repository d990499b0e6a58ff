package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"petledger/internal/csvexport"
	"petledger/internal/importer"
	"petledger/internal/validator/product"
)

var errInvalidRows = errors.New("file has invalid rows")

// validateOutput is what `ledgerctl validate` prints in json and yaml form.
type validateOutput struct {
	File          string             `json:"file" yaml:"file"`
	Summary       importer.Summary   `json:"summary" yaml:"summary"`
	Invalid       []*product.Outcome `json:"invalid" yaml:"invalid"`
	Warned        []*product.Outcome `json:"warned" yaml:"warned"`
	DuplicateKeys []string           `json:"duplicate_keys" yaml:"duplicate_keys"`
}

func newValidateCmd() *cobra.Command {
	var (
		format     string
		issuesPath string
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a product import file without submitting it",
		Long: `Parses a CSV, TSV or XLSX product file and runs the same row rules the
import API uses. Nothing is written to the database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := validateFile(args[0])
			if err != nil {
				return err
			}
			if issuesPath != "" {
				if err := writeIssues(issuesPath, out); err != nil {
					return err
				}
			}
			if err := render(cmd.OutOrStdout(), format, out, out.writeText); err != nil {
				return err
			}
			if strict && out.Summary.Invalid > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidRows, out.Summary.Invalid, out.Summary.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&issuesPath, "issues", "", "also write rejected and warned rows to this CSV file")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any row is invalid")
	return cmd
}

func validateFile(path string) (*validateOutput, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	name := filepath.Base(path)
	batch, err := importer.ParseFile(name, body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	rep := importer.ValidateBatch(product.New(), batch)
	slog.Debug("validated import file", slog.String("file", name), slog.Int("rows", rep.Total))

	return &validateOutput{
		File:          name,
		Summary:       rep.Summary(),
		Invalid:       rep.Invalid,
		Warned:        rep.Warned,
		DuplicateKeys: rep.DuplicateKeys,
	}, nil
}

func (o *validateOutput) writeText(w io.Writer) error {
	s := o.Summary
	if _, err := fmt.Fprintf(w, "%s: %d rows, %d valid, %d invalid, %d with warnings\n",
		o.File, s.Total, s.Valid, s.Invalid, s.Warned); err != nil {
		return err
	}
	for _, r := range o.Invalid {
		if _, err := fmt.Fprintf(w, "  row %d: %s\n", r.RowIndex, strings.Join(r.Errors, "; ")); err != nil {
			return err
		}
	}
	for _, r := range o.Warned {
		if _, err := fmt.Fprintf(w, "  row %d (warning): %s\n", r.RowIndex, strings.Join(r.Warnings, "; ")); err != nil {
			return err
		}
	}
	if len(o.DuplicateKeys) > 0 {
		_, err := fmt.Fprintf(w, "  duplicate SKUs: %s\n", strings.Join(o.DuplicateKeys, ", "))
		return err
	}
	return nil
}

// writeIssues writes invalid rows then warning-only rows, each row once.
func writeIssues(path string, o *validateOutput) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	rows := make([]*product.Outcome, 0, len(o.Invalid)+len(o.Warned))
	rows = append(rows, o.Invalid...)
	for _, r := range o.Warned {
		if r.IsValid {
			rows = append(rows, r)
		}
	}

	if _, err := f.Write(csvexport.BOM); err != nil {
		return err
	}
	w := csvexport.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteOutcomes(rows); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

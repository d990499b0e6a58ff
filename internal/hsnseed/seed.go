// Package hsnseed converts an HSN/SAC master workbook into SQL seed data for
// the hsn_codes table.
package hsnseed

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"petledger/internal/port"
)

// DefaultBatchSize is the number of rows per INSERT statement.
const DefaultBatchSize = 500

// Column names accepted in the workbook header, case-insensitively.
const (
	colCode        = "code"
	colDescription = "description"
	colRate        = "gst_rate"
	colCondition   = "condition"
)

var headerAliases = map[string]string{
	"code":           colCode,
	"hsn":            colCode,
	"sac":            colCode,
	"hsn_code":       colCode,
	"description":    colDescription,
	"desc":           colDescription,
	"gst_rate":       colRate,
	"rate":           colRate,
	"gst":            colRate,
	"condition":      colCondition,
	"condition_desc": colCondition,
}

// ReadWorkbook reads every sheet of an HSN/SAC master workbook. Each sheet
// needs a header row naming at least the code and rate columns; sheets
// without one are skipped. Rows whose code is not numeric or whose rate
// cannot be read are dropped. A rate cell naming several slabs ("12%-18%")
// gives one entry per slab. Duplicate code and rate pairs are kept once.
func ReadWorkbook(r io.Reader) ([]port.HSNEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	seen := make(map[string]bool)
	var entries []port.HSNEntry
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		entries = append(entries, readSheet(rows, seen)...)
	}
	return entries, nil
}

func readSheet(rows [][]string, seen map[string]bool) []port.HSNEntry {
	if len(rows) == 0 {
		return nil
	}
	cols := make(map[string]int)
	for i, h := range rows[0] {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if name, ok := headerAliases[key]; ok {
			if _, dup := cols[name]; !dup {
				cols[name] = i
			}
		}
	}
	if _, ok := cols[colCode]; !ok {
		return nil
	}
	if _, ok := cols[colRate]; !ok {
		return nil
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var entries []port.HSNEntry
	for _, row := range rows[1:] {
		code := cell(row, colCode)
		if !isNumeric(code) {
			continue
		}
		for _, rate := range ParseRates(cell(row, colRate)) {
			key := code + "|" + rate.StringFixed(2)
			if seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, port.HSNEntry{
				Code:          code,
				Description:   cell(row, colDescription),
				GSTRate:       rate,
				ConditionDesc: cell(row, colCondition),
			})
		}
	}
	return entries
}

// ratePattern matches a number followed by "%".
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// ParseRates extracts GST rates from free-text rate cells:
//
//	"18%"                                   -> [18]
//	"18"                                    -> [18]
//	"Exempt", "Nil"                         -> [0]
//	"12%-18%"                               -> [12 18]
//	"1% (without ITC) or 5% (without ITC)"  -> [1 5]
func ParseRates(s string) []decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "exempt", "nil", "nil rated":
		return []decimal.Decimal{decimal.Zero}
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return []decimal.Decimal{d}
	}

	var rates []decimal.Decimal
	for _, m := range ratePattern.FindAllStringSubmatch(s, -1) {
		d, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		dup := false
		for _, r := range rates {
			if r.Equal(d) {
				dup = true
				break
			}
		}
		if !dup {
			rates = append(rates, d)
		}
	}
	return rates
}

// WriteSQL writes entries as batched multi-row INSERTs inside one
// transaction. A non-positive batchSize uses DefaultBatchSize.
func WriteSQL(w io.Writer, entries []port.HSNEntry, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- HSN/SAC seed data: %d entries in batches of %d.\n", len(entries), batchSize)
	b.WriteString("BEGIN;\n")

	for start := 0; start < len(entries); start += batchSize {
		end := start + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		b.WriteString("\nINSERT INTO hsn_codes (code, description, gst_rate, condition_desc) VALUES\n")
		for i, e := range entries[start:end] {
			if i > 0 {
				b.WriteString(",\n")
			}
			fmt.Fprintf(&b, "  ('%s', '%s', %s, '%s')",
				escapeSQL(e.Code), escapeSQL(e.Description), e.GSTRate.StringFixed(2), escapeSQL(e.ConditionDesc))
		}
		b.WriteString(";\n")
	}

	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

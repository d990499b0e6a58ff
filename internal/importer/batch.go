// Package importer turns bulk-uploaded product files into validated,
// classified batches and hands the valid records to a submitter.
package importer

import (
	"strings"

	"petledger/internal/validator/product"
)

// Record is one parsed data row. RowIndex is 1-based with the header as
// row 1, so the first data row is 2.
type Record struct {
	RowIndex int
	Fields   product.RawRecord
}

// Batch is an ordered set of records parsed from one file.
type Batch struct {
	Header  []string
	Records []Record
}

// Len returns the number of data rows.
func (b *Batch) Len() int { return len(b.Records) }

// canonicalColumns maps lower-cased header names to their canonical form.
var canonicalColumns = func() map[string]string {
	m := make(map[string]string)
	for _, c := range product.RequiredColumns {
		m[strings.ToLower(c)] = c
	}
	for _, c := range product.OptionalColumns {
		m[strings.ToLower(c)] = c
	}
	return m
}()

// canonicalHeader trims a header cell, strips a UTF-8 BOM and maps known
// columns to their canonical spelling. Unknown columns are kept as-is.
func canonicalHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	key := strings.ToLower(strings.NewReplacer("_", "", " ", "").Replace(h))
	if c, ok := canonicalColumns[key]; ok {
		return c
	}
	return h
}

// newBatch builds a batch from a header and raw rows. Blank rows are
// skipped without consuming a row index; short rows are padded with empty
// strings and extra cells are dropped.
func newBatch(header []string, rows [][]string) *Batch {
	b := &Batch{Header: make([]string, len(header))}
	for i, h := range header {
		b.Header[i] = canonicalHeader(h)
	}

	rowIndex := 2
	for _, row := range rows {
		if blank(row) {
			continue
		}
		fields := make(product.RawRecord, len(b.Header))
		for i, col := range b.Header {
			if col == "" {
				continue
			}
			if i < len(row) {
				fields[col] = row[i]
			} else {
				fields[col] = ""
			}
		}
		b.Records = append(b.Records, Record{RowIndex: rowIndex, Fields: fields})
		rowIndex++
	}
	return b
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

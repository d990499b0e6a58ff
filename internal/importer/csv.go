package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"petledger/internal/domain"
)

// ParseCSV reads comma-separated text with an optional quoted field syntax.
// The first non-blank line is the header. Rows with the wrong number of
// cells are tolerated; see newBatch.
func ParseCSV(text string) (*Batch, error) {
	return ParseDelimited(text, ',')
}

// ParseDelimited is ParseCSV with a caller-chosen delimiter.
func ParseDelimited(text string, delim rune) (*Batch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyPayload
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	// drop leading blank lines so the header is the first real line
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyPayload
	}
	return newBatch(rows[0], rows[1:]), nil
}

// readRows drains r. A line the reader cannot tokenize keeps the cells read
// before the fault, so the row still gets its index and fails validation
// instead of vanishing; a fault with no cells read is logged and skipped.
func readRows(r *csv.Reader) ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, fmt.Errorf("reading csv: %w", err)
			}
			if blank(row) {
				log.Printf("importer.readRows: skipping unreadable line %d: %v", perr.StartLine, perr.Err)
				continue
			}
			log.Printf("importer.readRows: keeping partial line %d: %v", perr.StartLine, perr.Err)
		}
		rows = append(rows, row)
	}
}

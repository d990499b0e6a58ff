package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"petledger/internal/validator/product"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the issue report header row.
var columns = []string{
	"Row",
	"SKU",
	"Name",
	"Status",
	"Errors",
	"Warnings",
}

// Writer wraps csv.Writer for exporting row outcomes as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOutcomes writes one line per outcome, in the order given.
func (w *Writer) WriteOutcomes(outcomes []*product.Outcome) error {
	for _, o := range outcomes {
		if err := w.csv.Write(outcomeToRow(o)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func outcomeToRow(o *product.Outcome) []string {
	status := "valid"
	if !o.IsValid {
		status = "invalid"
	}
	return []string{
		strconv.Itoa(o.RowIndex),
		o.Record.SKU,
		o.Record.Name,
		status,
		strings.Join(o.Errors, "; "),
		strings.Join(o.Warnings, "; "),
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an uploaded file name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "import"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_issues_{YYYY-MM-DD}.csv
func BuildFilename(sourceName string) string {
	sanitized := SanitizeFilename(strings.TrimSuffix(sourceName, extOf(sourceName)))
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_issues_%s.csv", sanitized, date)
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}

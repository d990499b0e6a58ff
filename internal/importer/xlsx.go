package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"petledger/internal/domain"
)

// ParseXLSX reads the first worksheet of a workbook with the same row
// semantics as ParseCSV.
func ParseXLSX(r io.Reader) (*Batch, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %v", domain.ErrUnsupportedFileType, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, domain.ErrEmptyPayload
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyPayload
	}
	return newBatch(rows[0], rows[1:]), nil
}

package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"petledger/internal/domain"
)

// ParseFile picks a reader from the file extension, falling back to the
// payload's leading bytes when the name gives no hint.
func ParseFile(name string, body []byte) (*Batch, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "xlsx":
		return ParseXLSX(bytes.NewReader(body))
	case "tsv":
		return ParseDelimited(string(body), '\t')
	case "csv", "txt":
		return ParseCSV(string(body))
	case "":
		if bytes.HasPrefix(body, []byte("PK\x03\x04")) {
			return ParseXLSX(bytes.NewReader(body))
		}
		return ParseCSV(string(body))
	}
	return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
}

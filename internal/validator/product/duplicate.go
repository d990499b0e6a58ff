package product

import "fmt"

// SeenKeys tracks the first row of every SKU within one batch. It belongs
// to a single validation run and is not safe for concurrent use.
type SeenKeys struct {
	first      map[string]*Outcome
	duplicates []string
	reported   map[string]bool
}

// NewSeenKeys returns an empty tracker.
func NewSeenKeys() *SeenKeys {
	return &SeenKeys{
		first:    make(map[string]*Outcome),
		reported: make(map[string]bool),
	}
}

// FirstRow returns the row index where sku was first seen.
func (s *SeenKeys) FirstRow(sku string) (int, bool) {
	o, ok := s.first[sku]
	if !ok {
		return 0, false
	}
	return o.RowIndex, true
}

// Duplicates lists SKUs seen more than once, in order of first collision.
func (s *SeenKeys) Duplicates() []string {
	out := make([]string, len(s.duplicates))
	copy(out, s.duplicates)
	return out
}

// check registers o under sku, or marks both o and the original row as
// duplicates of each other.
func (s *SeenKeys) check(sku string, o *Outcome) {
	if sku == "" {
		return
	}
	orig, seen := s.first[sku]
	if !seen {
		s.first[sku] = o
		return
	}
	o.addError(duplicateMessage(sku, orig.RowIndex))
	orig.addError(duplicateMessage(sku, o.RowIndex))
	if !s.reported[sku] {
		s.reported[sku] = true
		s.duplicates = append(s.duplicates, sku)
	}
}

func duplicateMessage(sku string, otherRow int) string {
	return fmt.Sprintf("Duplicate SKU %q (also in row %d)", sku, otherRow)
}

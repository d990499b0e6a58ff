package importer

import (
	"petledger/internal/domain"
	"petledger/internal/validator/product"
)

// Report is the classification of one validated batch. Warned overlaps
// with Valid and Invalid: a row with warnings is listed in Warned as well as
// in whichever of the other two applies.
type Report struct {
	Total         int                `json:"total" yaml:"total"`
	Valid         []*product.Outcome `json:"valid" yaml:"valid"`
	Invalid       []*product.Outcome `json:"invalid" yaml:"invalid"`
	Warned        []*product.Outcome `json:"warned" yaml:"warned"`
	DuplicateKeys []string           `json:"duplicate_keys" yaml:"duplicate_keys"`
}

// Products returns the normalized records of the valid rows in file order.
func (r *Report) Products() []domain.Product {
	out := make([]domain.Product, 0, len(r.Valid))
	for _, o := range r.Valid {
		out = append(out, o.Record)
	}
	return out
}

// Summary returns just the counts.
func (r *Report) Summary() Summary {
	return Summary{
		Total:      r.Total,
		Valid:      len(r.Valid),
		Invalid:    len(r.Invalid),
		Warned:     len(r.Warned),
		Duplicates: len(r.DuplicateKeys),
	}
}

// Summary holds the row counts of a report.
type Summary struct {
	Total      int `json:"total" yaml:"total"`
	Valid      int `json:"valid" yaml:"valid"`
	Invalid    int `json:"invalid" yaml:"invalid"`
	Warned     int `json:"warned" yaml:"warned"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
}

// ValidateBatch runs v over every record in file order with one shared
// duplicate tracker, then classifies the outcomes. Classification happens
// after the whole batch is seen because a later duplicate invalidates an
// earlier row.
func ValidateBatch(v *product.Validator, b *Batch) *Report {
	seen := product.NewSeenKeys()
	outcomes := make([]*product.Outcome, 0, b.Len())
	for _, rec := range b.Records {
		outcomes = append(outcomes, v.Validate(rec.Fields, rec.RowIndex, seen))
	}

	rep := &Report{
		Total:         len(outcomes),
		Valid:         []*product.Outcome{},
		Invalid:       []*product.Outcome{},
		Warned:        []*product.Outcome{},
		DuplicateKeys: seen.Duplicates(),
	}
	for _, o := range outcomes {
		if o.IsValid {
			rep.Valid = append(rep.Valid, o)
		} else {
			rep.Invalid = append(rep.Invalid, o)
		}
		if o.HasWarnings() {
			rep.Warned = append(rep.Warned, o)
		}
	}
	return rep
}

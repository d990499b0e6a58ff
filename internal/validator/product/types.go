// Package product validates and normalizes raw inventory import records.
package product

import "petledger/internal/domain"

// Column names recognized in an import header.
const (
	ColName                 = "name"
	ColSKU                  = "sku"
	ColCategory             = "category"
	ColQuantity             = "quantity"
	ColPrice                = "price"
	ColBrand                = "brand"
	ColDescription          = "description"
	ColMinStockLevel        = "minStockLevel"
	ColPetSpecies           = "petSpecies"
	ColRequiresPrescription = "requiresPrescription"
	ColIsActive             = "isActive"
)

// RequiredColumns must be present and non-empty on every row.
var RequiredColumns = []string{ColName, ColSKU, ColCategory, ColQuantity, ColPrice}

// OptionalColumns may be absent from the header entirely.
var OptionalColumns = []string{ColBrand, ColDescription, ColMinStockLevel, ColPetSpecies, ColRequiresPrescription, ColIsActive}

// Categories is the category whitelist. Unknown values fall back to "other".
var Categories = []string{
	"food", "treats", "toys", "medication", "supplies",
	"grooming", "accessories", "health", "cleaning", "other",
}

// PetSpecies is the species whitelist. Unknown values fall back to "other".
var PetSpecies = []string{"dog", "cat", "bird", "fish", "reptile", "small_animal", "all", "other"}

// DefaultEnumValue is used when an enum field holds an unrecognized value.
const DefaultEnumValue = "other"

// RawRecord is one parsed row keyed by canonical column name.
type RawRecord map[string]string

// Outcome is the result of validating one row. Record is always populated
// with whatever could be normalized, even when IsValid is false.
type Outcome struct {
	RowIndex int            `json:"row_index" yaml:"row_index"`
	Record   domain.Product `json:"record" yaml:"record"`
	Errors   []string       `json:"errors" yaml:"errors"`
	Warnings []string       `json:"warnings" yaml:"warnings"`
	IsValid  bool           `json:"is_valid" yaml:"is_valid"`
}

// HasWarnings reports whether the row produced any warning.
func (o *Outcome) HasWarnings() bool { return len(o.Warnings) > 0 }

func (o *Outcome) addError(msg string) {
	o.Errors = append(o.Errors, msg)
	o.IsValid = false
}

func (o *Outcome) addWarning(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

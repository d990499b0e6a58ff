package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a normalized inventory record ready for persistence.
type Product struct {
	Name                 string          `json:"name" db:"name" yaml:"name"`
	SKU                  string          `json:"sku" db:"sku" yaml:"sku"`
	Category             string          `json:"category" db:"category" yaml:"category"`
	Quantity             int             `json:"quantity" db:"quantity" yaml:"quantity"`
	Price                decimal.Decimal `json:"price" db:"price" yaml:"price"`
	Brand                string          `json:"brand,omitempty" db:"brand" yaml:"brand,omitempty"`
	Description          string          `json:"description,omitempty" db:"description" yaml:"description,omitempty"`
	MinStockLevel        *int            `json:"min_stock_level,omitempty" db:"min_stock_level" yaml:"min_stock_level,omitempty"`
	PetSpecies           string          `json:"pet_species" db:"pet_species" yaml:"pet_species"`
	RequiresPrescription bool            `json:"requires_prescription" db:"requires_prescription" yaml:"requires_prescription"`
	IsActive             bool            `json:"is_active" db:"is_active" yaml:"is_active"`
}

// ImportState is the lifecycle state of an import session.
type ImportState string

const (
	ImportStateIdle         ImportState = "idle"
	ImportStateFileSelected ImportState = "file_selected"
	ImportStateValidated    ImportState = "validated"
	ImportStateSubmitting   ImportState = "submitting"
	ImportStateCompleted    ImportState = "completed"
	ImportStateFailed       ImportState = "failed"
)

// SubmitResult is what the submission collaborator reports back.
type SubmitResult struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// ImportRun is the persisted summary of one import session.
type ImportRun struct {
	ID           string      `db:"id" json:"id"`
	FileName     string      `db:"file_name" json:"file_name"`
	ArchiveKey   string      `db:"archive_key" json:"archive_key,omitempty"`
	State        ImportState `db:"state" json:"state"`
	TotalRows    int         `db:"total_rows" json:"total_rows"`
	ValidRows    int         `db:"valid_rows" json:"valid_rows"`
	InvalidRows  int         `db:"invalid_rows" json:"invalid_rows"`
	WarnedRows   int         `db:"warned_rows" json:"warned_rows"`
	Successful   int         `db:"successful" json:"successful"`
	Failed       int         `db:"failed" json:"failed"`
	ErrorMessage string      `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

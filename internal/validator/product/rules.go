package product

import (
	"fmt"
	"strings"

	"petledger/internal/domain"
)

// Severity is how a failing rule affects a row.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule is one field check. apply reads the raw row, writes the normalized
// value into p and reports how the field went.
type Rule struct {
	key      string
	name     string
	field    string
	severity Severity
	apply    func(raw RawRecord, p *domain.Product) Result
}

func (r *Rule) RuleKey() string    { return r.key }
func (r *Rule) RuleName() string   { return r.name }
func (r *Rule) Field() string      { return r.field }
func (r *Rule) Severity() Severity { return r.severity }

// RuleInfo describes a rule for schema listings.
type RuleInfo struct {
	Key      string   `json:"key" yaml:"key"`
	Name     string   `json:"name" yaml:"name"`
	Field    string   `json:"field" yaml:"field"`
	Severity Severity `json:"severity" yaml:"severity"`
}

func value(raw RawRecord, field string) string {
	return strings.TrimSpace(raw[field])
}

// requiredRule checks presence only; normalization happens in later rules.
func requiredRule(field string) *Rule {
	return &Rule{
		key: "req." + field, name: "Required: " + field,
		field: field, severity: SeverityError,
		apply: func(raw RawRecord, _ *domain.Product) Result {
			if value(raw, field) == "" {
				return Result{Kind: FieldError, Reason: fmt.Sprintf("Missing required field: %s", field)}
			}
			return pass
		},
	}
}

// textRule copies a trimmed string field into the product.
func textRule(field string, set func(p *domain.Product, v string)) *Rule {
	return &Rule{
		key: "text." + field, name: "Text: " + field,
		field: field, severity: SeverityError,
		apply: func(raw RawRecord, p *domain.Product) Result {
			set(p, value(raw, field))
			return pass
		},
	}
}

// RequiredRules returns the presence checks, in column order.
func RequiredRules() []*Rule {
	rules := make([]*Rule, 0, len(RequiredColumns))
	for _, col := range RequiredColumns {
		rules = append(rules, requiredRule(col))
	}
	return rules
}

// FormatRules returns the numeric coercion checks. Empty values are left to
// the required rules so a missing field is reported once.
func FormatRules() []*Rule {
	return []*Rule{
		{
			key: "fmt.quantity", name: "Format: Quantity",
			field: ColQuantity, severity: SeverityError,
			apply: func(raw RawRecord, p *domain.Product) Result {
				if value(raw, ColQuantity) == "" {
					return pass
				}
				f := ParseWhole(ColQuantity, raw[ColQuantity])
				p.Quantity = f.Value
				return f.Result()
			},
		},
		{
			key: "fmt.price", name: "Format: Price",
			field: ColPrice, severity: SeverityError,
			apply: func(raw RawRecord, p *domain.Product) Result {
				if value(raw, ColPrice) == "" {
					return pass
				}
				f := ParseAmount(ColPrice, raw[ColPrice])
				p.Price = f.Value
				return f.Result()
			},
		},
		{
			key: "fmt.min_stock_level", name: "Format: Min Stock Level",
			field: ColMinStockLevel, severity: SeverityError,
			apply: func(raw RawRecord, p *domain.Product) Result {
				if value(raw, ColMinStockLevel) == "" {
					return pass
				}
				f := ParseWhole(ColMinStockLevel, raw[ColMinStockLevel])
				if f.Kind != FieldError {
					v := f.Value
					p.MinStockLevel = &v
				}
				return f.Result()
			},
		},
	}
}

// TextRules copy the free-text columns.
func TextRules() []*Rule {
	return []*Rule{
		textRule(ColName, func(p *domain.Product, v string) { p.Name = v }),
		textRule(ColSKU, func(p *domain.Product, v string) { p.SKU = v }),
		textRule(ColBrand, func(p *domain.Product, v string) { p.Brand = v }),
		textRule(ColDescription, func(p *domain.Product, v string) { p.Description = v }),
	}
}

// EnumRules default unrecognized values to "other" with a warning.
func EnumRules() []*Rule {
	return []*Rule{
		{
			key: "enum.category", name: "Enum: Category",
			field: ColCategory, severity: SeverityWarning,
			apply: func(raw RawRecord, p *domain.Product) Result {
				if value(raw, ColCategory) == "" {
					// already an error; still default the record
					p.Category = DefaultEnumValue
					return pass
				}
				f := ParseEnum(ColCategory, raw[ColCategory], Categories, DefaultEnumValue)
				p.Category = f.Value
				return f.Result()
			},
		},
		{
			key: "enum.pet_species", name: "Enum: Pet Species",
			field: ColPetSpecies, severity: SeverityWarning,
			apply: func(raw RawRecord, p *domain.Product) Result {
				f := ParseEnum(ColPetSpecies, raw[ColPetSpecies], PetSpecies, DefaultEnumValue)
				p.PetSpecies = f.Value
				return f.Result()
			},
		},
	}
}

// BooleanRules carry per-field defaults: prescriptions default off, items
// default active.
func BooleanRules() []*Rule {
	return []*Rule{
		{
			key: "bool.requires_prescription", name: "Boolean: Requires Prescription",
			field: ColRequiresPrescription, severity: SeverityWarning,
			apply: func(raw RawRecord, p *domain.Product) Result {
				f := ParseBool(ColRequiresPrescription, raw[ColRequiresPrescription], false)
				p.RequiresPrescription = f.Value
				return f.Result()
			},
		},
		{
			key: "bool.is_active", name: "Boolean: Is Active",
			field: ColIsActive, severity: SeverityWarning,
			apply: func(raw RawRecord, p *domain.Product) Result {
				f := ParseBool(ColIsActive, raw[ColIsActive], true)
				p.IsActive = f.Value
				return f.Result()
			},
		},
	}
}

// AllRules returns every field rule in evaluation order.
func AllRules() []*Rule {
	var all []*Rule
	all = append(all, RequiredRules()...)
	all = append(all, FormatRules()...)
	all = append(all, TextRules()...)
	all = append(all, EnumRules()...)
	all = append(all, BooleanRules()...)
	return all
}

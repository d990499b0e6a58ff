package product

// Validator runs an ordered rule set over raw records.
type Validator struct {
	rules []*Rule
}

// New returns a Validator with the built-in rules.
func New() *Validator {
	return &Validator{rules: AllRules()}
}

// Rules describes the configured rules in evaluation order.
func (v *Validator) Rules() []RuleInfo {
	out := make([]RuleInfo, 0, len(v.rules))
	for _, r := range v.rules {
		out = append(out, RuleInfo{Key: r.key, Name: r.name, Field: r.field, Severity: r.severity})
	}
	return out
}

// Validate checks and normalizes one row. It never fails: every finding is
// reported on the returned Outcome. When seen is non-nil the SKU is checked
// against earlier rows of the batch, and a collision also marks the earlier
// row's Outcome.
func (v *Validator) Validate(raw RawRecord, rowIndex int, seen *SeenKeys) *Outcome {
	o := &Outcome{
		RowIndex: rowIndex,
		Errors:   []string{},
		Warnings: []string{},
		IsValid:  true,
	}

	for _, r := range v.rules {
		res := r.apply(raw, &o.Record)
		switch res.Kind {
		case FieldError:
			o.addError(res.Reason)
		case FieldWarning:
			o.addWarning(res.Reason)
		}
	}

	if seen != nil {
		seen.check(o.Record.SKU, o)
	}
	return o
}

var defaultValidator = New()

// Validate runs the built-in rules. See Validator.Validate.
func Validate(raw RawRecord, rowIndex int, seen *SeenKeys) *Outcome {
	return defaultValidator.Validate(raw, rowIndex, seen)
}

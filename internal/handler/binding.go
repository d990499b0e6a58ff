package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"petledger/internal/tax"
)

// RegisterValidators adds the custom binding tags used by request DTOs to
// gin's validator engine:
//
//	hsn_sac     HSN (4/6/8 digits) or SAC (99xxxx) code
//	state_code  a known GST state code
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("hsn_sac", func(fl validator.FieldLevel) bool {
		return tax.ValidClassificationCode(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("registering hsn_sac: %w", err)
	}
	if err := v.RegisterValidation("state_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if code == "" {
			return true
		}
		_, known := tax.StateName(code)
		return known
	}); err != nil {
		return fmt.Errorf("registering state_code: %w", err)
	}
	return nil
}

// bindingMessage turns validator errors into one readable line.
func bindingMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "hsn_sac":
		return fmt.Sprintf("%s %q is not a valid HSN or SAC code", fe.Field(), fe.Value())
	case "state_code":
		return fmt.Sprintf("%s %q is not a known state code", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

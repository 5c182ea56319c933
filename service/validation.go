package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"lotus-engine/domain"
)

// Validator checks request structs against their `validate` tags and the
// service limits.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate returns an ErrInvalidInput-wrapped error naming every failed
// field.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("Field '%s' failed validation '%s'", e.Namespace(), e.Tag()))
			}
			return invalidf("validation failed: %s", strings.Join(msgs, "; "))
		}
		return invalidf("%v", err)
	}
	return nil
}

// ValidateStructured returns field -> message for UI forms, nil when valid.
func (v *Validator) ValidateStructured(i any) map[string]string {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["_global"] = err.Error()
		return errs
	}
	for _, e := range validationErrors {
		msg := fmt.Sprintf("failed validation on '%s'", e.Tag())
		switch e.Tag() {
		case "required":
			msg = "This field is required"
		case "gte":
			msg = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			msg = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			msg = fmt.Sprintf("Must contain at least %s items", e.Param())
		case "oneof":
			msg = fmt.Sprintf("Must be one of: %s", e.Param())
		}
		errs[e.Namespace()] = msg
	}
	return errs
}

// ValidateTrancheRequest applies the struct tags and the size limits of the
// service.
func (v *Validator) ValidateTrancheRequest(req domain.TrancheRequest) error {
	if err := v.Validate(req); err != nil {
		return err
	}
	if len(req.Tranches) > MaxTranches {
		return invalidf("too many tranches: %d exceeds the maximum of %d", len(req.Tranches), MaxTranches)
	}
	for i, t := range req.Tranches {
		for _, f := range []NamedValue{
			{"supplyAssets", t.SupplyAssets},
			{"borrowAssets", t.BorrowAssets},
			{"pendingInterest", t.PendingInterest},
		} {
			if math.IsInf(f.Value, 0) || f.Value > MaxAssetAmount {
				return invalidf("tranche %d: %s exceeds the maximum of %.0f", i, f.Name, MaxAssetAmount)
			}
		}
		if t.BorrowRate > MaxBorrowRate {
			return invalidf("tranche %d: borrowRate exceeds the maximum of %.2f", i, MaxBorrowRate)
		}
		if i > 0 && t.LLTV < req.Tranches[i-1].LLTV {
			return invalidf("tranche %d: lltv %.2f is below the more senior tranche's %.2f", i, t.LLTV, req.Tranches[i-1].LLTV)
		}
	}
	return nil
}

// NamedValue pairs an input value with the parameter name used in errors.
type NamedValue struct {
	Name  string
	Value float64
}

// ValidateUnitInterval checks that every value lies in [0, 1] and reports
// the first one, in argument order, that does not.
func ValidateUnitInterval(values ...NamedValue) error {
	for _, v := range values {
		if math.IsNaN(v.Value) || v.Value < 0 || v.Value > 1 {
			return invalidf("%s must be between 0 and 1, got %v", v.Name, v.Value)
		}
	}
	return nil
}

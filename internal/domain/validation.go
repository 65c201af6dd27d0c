package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// amountLimit is the smallest absolute value that no longer fits NUMERIC(10,2).
var amountLimit = decimal.New(1, 8)

// validateAmount checks that v is stored by a NUMERIC(10,2) column without
// rounding or overflow.
func validateAmount(field string, v decimal.Decimal) error {
	if !v.Equal(v.Round(2)) {
		return fmt.Errorf("%w: %s: %w", ErrValidation, field, ErrAmountPrecision)
	}
	if v.Abs().GreaterThanOrEqual(amountLimit) {
		return fmt.Errorf("%w: %s: %w", ErrValidation, field, ErrAmountOutOfRange)
	}
	return nil
}

// validateStruct runs the struct-tag rules and folds any failures into a
// single error wrapping ErrValidation.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "e164" {
			return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidPhoneNumber, fe.Value())
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

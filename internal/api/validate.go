package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/familytrip/tripboard/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so messages match the wire format.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Dates validate as their underlying time so "required" rejects the zero date.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(openapi_types.Date); ok {
			return d.Time
		}
		return nil
	}, openapi_types.Date{})

	// Decimals validate as floats so numeric tags such as gt=0 apply.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(ExpenseRequest)
		if r.Amount.IsPositive() && !domain.AmountFits(r.Amount) {
			sl.ReportError(r.Amount, "amount", "Amount", "amount", "")
		}
	}, ExpenseRequest{})

	return v
}

// Validate checks a request DTO against its struct tags. Failures wrap
// domain.ErrValidation and list every offending field.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "amount":
		return fmt.Sprintf("%s must have at most %d decimal places and %d integer digits",
			field, domain.AmountScale, domain.AmountMaxDigits)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "datetime":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

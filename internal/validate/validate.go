package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validateInstance = validator.New(validator.WithRequiredStructEnabled())

// StructFields runs the `validate` tags on a struct and returns a
// field -> reason map suitable for an error response body, or nil when
// everything passes.
func StructFields(s any) map[string]string {
	err := validateInstance.Struct(s)
	if err == nil {
		return nil
	}

	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		return map[string]string{"payload": "not a validatable struct"}
	}

	fieldErrs := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrs[strings.ToLower(fieldErr.Field())] = reason(fieldErr)
		}
	}

	return fieldErrs
}

func reason(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed '%s' validation", fieldErr.Tag())
	}
}

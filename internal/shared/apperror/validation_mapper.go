package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// start_date -> Start Date
func formatFieldName(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError turns a binding failure into a VALIDATION_ERROR. The
// message names the first offending field; details lists every field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeValidation, "Invalid request body", http.StatusBadRequest)
	}

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field()] = describe(e)
	}

	first := errs[0]
	var appErr *AppError
	if first.Tag() == "required" {
		appErr = RequiredField(formatFieldName(first.Field()))
	} else {
		appErr = InvalidField(formatFieldName(first.Field()))
	}
	return appErr.WithDetails(fields)
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + e.Param()
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "uuid", "uuid4":
		return "must be a uuid"
	default:
		return "invalid"
	}
}

package validation

import (
	"errors"
	"fmt"
	"strings"

	"vericv-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-facing labels
var FieldLabels = map[string]string{
	"fullName":     "full name",
	"fieldOfStudy": "field of study",
	"startDate":    "start date",
	"endDate":      "end date",
	"isPublic":     "visibility",
	"isCurrent":    "current position",
}

// Check validates s and converts any failure into a ValidationFailed AppError.
func Check(v *validator.Validate, s interface{}) error {
	if err := v.Struct(s); err != nil {
		return apperror.Validation(strings.Join(FormatValidationErrors(err), "; "))
	}
	return nil
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)

	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' -", label)

	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)

	case "date_ymd":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", label)

	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}

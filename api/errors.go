package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/enat-care/enat/backend/errs"
	"github.com/go-playground/validator/v10"
)

// wrapDatabaseError passes domain errors through untouched and classifies
// everything else as a database failure.
func wrapDatabaseError(operation, entity string, err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return errs.NewDatabaseError(operation, entity, err)
}

// validationMessage turns the first validator failure into a client-facing
// message keyed by the JSON field name.
func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid request body"
	}

	first := validationErrs[0]
	field := jsonFieldName(first.Namespace())

	switch first.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, first.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, first.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// jsonFieldName lowers a validator namespace like
// "createBlogDetailRequest.Tags[0].TagID" into "tags[0].tag_id".
func jsonFieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = snakeCase(part)
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

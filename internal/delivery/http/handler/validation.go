package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validationMessage reports the first failing field, e.g. "email is invalid".
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "Bad request"
	}

	f := ve[0]
	field := strings.ToLower(f.Field())
	switch f.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " is invalid"
	case "min":
		return field + " must be at least " + f.Param() + " characters"
	default:
		return field + " is invalid"
	}
}

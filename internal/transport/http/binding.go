package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apperrors "mrp/internal/errors"
)

// validate is configured once and only read afterwards; validator.Validate is
// safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON reads the request body into dst and validates its struct tags.
// A missing or blank body, malformed JSON and failed validation all come back
// as InvalidInput errors. Unknown fields are ignored.
func DecodeJSON(req *Request, dst any) error {
	body, ok := req.Body()
	if !ok || strings.TrimSpace(body) == "" {
		return apperrors.ErrEmptyBody
	}

	if err := render.DecodeJSON(strings.NewReader(body), dst); err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, apperrors.ErrInvalidJSON.Message, err)
	}

	return Validate(dst)
}

// Validate runs struct-tag validation on v. Non-struct values pass.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.Wrap(apperrors.KindInvalidInput, formatValidationError(fieldErrs[0]), err)
	}
	return apperrors.Wrap(apperrors.KindInvalidInput, "Request validation failed", err)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

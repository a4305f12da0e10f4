package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ghuser/webapp/pkg/apperr"
	"github.com/ghuser/webapp/pkg/errhttp"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// Validate runs struct-level validation using go-playground/validator tags.
// The returned error wraps apperr.ErrValidation and carries field messages.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return &apperr.FieldError{Fields: FormatValidationErrors(ve)}
}

// Var validates a single value against tag, returning a FieldError for field.
func Var(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return apperr.NewFieldError(field, formatFieldError(ve[0]))
	}
	return fmt.Errorf("%w: %s: %v", apperr.ErrValidation, field, err)
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "email":
		return "Must be a valid email address"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// DecodeAndValidate decodes the JSON request body into T and validates it.
// Unknown fields are ignored. Both failure modes wrap apperr.ErrValidation.
func DecodeAndValidate[T any](r *http.Request) (*T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: request body too large", apperr.ErrValidation)
		}
		return nil, fmt.Errorf("%w: malformed JSON body", apperr.ErrValidation)
	}
	if err := Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidateRequest decodes and validates the body, writing the error
// envelope on failure. Returns (parsedStruct, true) on success.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	req, err := DecodeAndValidate[T](r)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return nil, false
	}
	return req, true
}

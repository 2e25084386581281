package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string // JSON field name, e.g. "channelId"
	Message string
}

// Errors is a collection of field errors returned when input fails validation.
type Errors []FieldError

// Error implements the error interface.
func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Field+" "+e.Message)
	}
	return strings.Join(parts, "; ")
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Postgres text columns reject NUL bytes and invalid UTF-8.
	if err := validate.RegisterValidation("storabletext", storableText); err != nil {
		panic(err)
	}
}

func storableText(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// Struct validates v against its `validate` tags. It returns Errors when any
// field fails, nil otherwise.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// NormalizeText trims surrounding whitespace so blank values count as missing.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "storabletext":
		return "must not contain NUL characters or invalid UTF-8"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

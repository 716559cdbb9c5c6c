// Package validation wraps go-playground/validator to check request shapes
// against field rules before any persistence attempt. Violations are
// collected into a domain.ValidationError with one human-readable message
// per broken rule, in struct field order.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/prn-tf/coursebook/internal/domain"
)

// validate is the shared validator instance. The validator caches struct
// metadata internally, so a single instance is reused for all checks.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	return v
}

// notBlank fails for strings that are empty or whitespace-only. Nil
// pointers are left to the required rule.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return true
}

// Struct validates the given struct. On violation it returns a
// *domain.ValidationError carrying one message per broken rule, ordered by
// field declaration. Any non-validation failure (a misconfigured rule) is
// returned unchanged.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, message(fe))
	}

	return domain.NewValidationError(messages...)
}

// message maps a single field error to its client-facing message.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "A " + fe.Field() + " is required"
	case "notblank":
		return "Please provide a " + fe.Field()
	default:
		return fe.Field() + " is invalid"
	}
}

// Package validation configures go-playground/validator for parcel payloads
// and turns its errors into domain violations. The HTTP layer and the parcel
// service share it so a rejected field reads the same from either.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/99minutos/parcel-service/internal/core/domain"
)

// New returns a validator that names fields by their json tag and knows the
// notblank rule.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(TagName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// TagName reports the json name of f, or "" when the field is not serialised.
func TagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Struct validates s and returns nil or a *domain.ValidationError listing
// every rejected field.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError(domain.FieldViolation{Message: err.Error()})
	}

	violations := make([]domain.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		field := FieldPath(fe.Namespace())
		violations = append(violations, domain.FieldViolation{Field: field, Message: Message(field, fe)})
	}
	return domain.NewValidationError(violations...)
}

// FieldPath strips the root struct name: "BookingInput.sender.email" -> "sender.email".
func FieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// Message renders fe for the field at path field.
func Message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	default:
		return field + " is invalid"
	}
}

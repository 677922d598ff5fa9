package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mesapos/restaurant-pos/pkg/permission"
)

type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns the echo.Validator used for request payloads. Errors
// name fields by their JSON key, and the extra "role" tag accepts any role
// from the permission table.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return permission.IsRole(fl.Field().String())
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	msgs := make([]string, len(fields))
	for i, fe := range fields {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

var tagMessages = map[string]string{
	"gt":    "must be greater than %s",
	"gte":   "must be at least %s",
	"lte":   "must be at most %s",
	"min":   "must have at least %s",
	"max":   "must have at most %s",
	"len":   "must have length %s",
	"oneof": "must be one of: %s",
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "role":
		return field + " must be one of: " + strings.Join(permission.Roles(), " ")
	}
	if format, ok := tagMessages[fe.Tag()]; ok {
		msg := field + " " + fmt.Sprintf(format, fe.Param())
		if fe.Kind() == reflect.String && (fe.Tag() == "min" || fe.Tag() == "max" || fe.Tag() == "len") {
			msg += " characters"
		}
		return msg
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

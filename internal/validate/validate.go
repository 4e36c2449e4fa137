package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "showcase/internal/errors"
)

var std = New()

// New returns a validator that reports fields by their JSON name.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns a *errors.ValidationError listing every rejected field.
func Struct(s interface{}) error {
	if err := std.Struct(s); err != nil {
		return apperrors.FromValidator(err)
	}
	return nil
}

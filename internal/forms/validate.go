package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// validate runs struct validation and maps failures to user-facing messages
// keyed by form field name.
func validate(form any) map[string][]string {
	err := validatorInstance().Struct(form)
	if err == nil {
		return nil
	}

	out := map[string][]string{}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		out[""] = []string{err.Error()}
		return out
	}
	for _, fe := range ves {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "datetime":
		return "Enter a valid date."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), len([]rune(fmt.Sprint(fe.Value()))))
	default:
		return fmt.Sprintf("Failed the %q check.", fe.Tag())
	}
}

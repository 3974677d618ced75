package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"marketplace/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.Date); ok {
			return d.Time
		}
		return nil
	}, models.Date{})
	_ = v.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		t, ok := dateOf(fl.Field())
		return ok && t.Before(models.Today().Time)
	})
	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		t, ok := dateOf(fl.Field())
		return ok && t.After(models.Today().Time)
	})
	return v
}

func dateOf(field reflect.Value) (time.Time, bool) {
	switch v := field.Interface().(type) {
	case time.Time:
		return v, true
	case models.Date:
		return v.Time, true
	default:
		return time.Time{}, false
	}
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is returned by Struct when one or more fields are invalid.
type Errors []ValidationError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Struct validates obj against its validate tags.
func Struct(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Type:    fe.Tag(),
		})
	}
	return out
}

// IsValidationError reports whether err came from invalid input.
func IsValidationError(err error) bool {
	var errs Errors
	return errors.As(err, &errs)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "number":
		return "Must contain digits only"
	case "pastdate":
		return "Must be a date in the past"
	case "futuredate":
		return "Must be a date in the future"
	default:
		return "Invalid value"
	}
}

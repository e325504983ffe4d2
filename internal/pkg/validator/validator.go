package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/plannivo/booking-api/internal/pkg/hhmm"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// "HH:MM" wall-clock time
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, ok := hhmm.ToMinutes(fl.Field().String())
		return ok
	})

	// YYYY-MM-DD calendar date
	validate.RegisterValidation("date_ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, fe := range validationErrors {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "uuid":
			errors[field] = "Must be a valid UUID"
		case "gt":
			errors[field] = "Value must be greater than " + fe.Param()
		case "gte":
			errors[field] = "Value must be at least " + fe.Param()
		case "lte":
			errors[field] = "Value must be at most " + fe.Param()
		case "max":
			errors[field] = "Value is too long (max: " + fe.Param() + ")"
		case "hhmm":
			errors[field] = "Invalid time. Must be HH:MM"
		case "date_ymd":
			errors[field] = "Invalid date. Must be YYYY-MM-DD"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

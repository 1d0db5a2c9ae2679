package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/platform/internal/interfaces/http/dto"
)

// SetupValidator reports validation failures under the json (or form) name
// the client sent rather than the Go field name
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			switch name {
			case "-":
				return ""
			case "":
				continue
			default:
				return name
			}
		}
		return ""
	})
}

// ValidationDetails returns one detail per failed field, or nil for bind
// errors that never reached the validator (bad JSON, wrong types)
func ValidationDetails(err error) []dto.ValidationDetail {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return nil
	}
	details := make([]dto.ValidationDetail, len(fields))
	for i, fe := range fields {
		details[i] = dto.ValidationDetail{Field: fe.Field(), Message: fieldMessage(fe)}
	}
	return details
}

// Messages keyed by tag. Params are appended; string lengths get a unit.
var fieldMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"dive":     "Invalid list element",
	"min":      "Must be at least ",
	"max":      "Must be at most ",
	"len":      "Must be exactly ",
	"oneof":    "Must be one of: ",
	"gte":      "Must be greater than or equal to ",
	"lte":      "Must be less than or equal to ",
	"gt":       "Must be greater than ",
	"lt":       "Must be less than ",
}

func fieldMessage(fe validator.FieldError) string {
	msg, ok := fieldMessages[fe.Tag()]
	if !ok {
		return "Invalid value"
	}
	if fe.Param() == "" {
		return msg
	}
	msg += fe.Param()
	switch fe.Tag() {
	case "min", "max", "len":
		if fe.Kind() == reflect.String {
			msg += " characters"
		}
	}
	return msg
}

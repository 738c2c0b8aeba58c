package validators

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/helphub/helphub-backend/pkg/enums"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("report_status", func(fl validator.FieldLevel) bool {
		return enums.ReportStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("volunteer_status", func(fl validator.FieldLevel) bool {
		return enums.VolunteerStatus(fl.Field().String()).IsValid()
	})
	return v
}

// Struct validates input against its `validate` tags and returns a
// CodeValidation error carrying one message per failing field.
func Struct(input any) error {
	if err := validate.Struct(input); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "report_status":
		return "must be one of pending, inProgress, resolved"
	case "volunteer_status":
		return "must be one of active, inactive"
	}
	return "is invalid"
}

// FieldError builds a single-field validation error in the same shape Struct
// produces, for checks that need a store lookup.
func FieldError(field, message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{field: message})
}

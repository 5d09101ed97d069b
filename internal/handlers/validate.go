// ABOUTME: Request body validation
// ABOUTME: Wraps validator/v10 with an HH:MM rule and user-facing messages

package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/services"
)

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return services.ValidScheduleTime(fl.Field().String())
	})

	return &requestValidator{validate: v}
}

// Check validates a request and returns the first problem as a readable message
func (rv *requestValidator) Check(req any) (string, bool) {
	err := rv.validate.Struct(req)
	if err == nil {
		return "", true
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error(), false
	}
	return message(errs[0]), false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "required_if":
		return services.ErrScheduleTimeRequired.Error()
	case "hhmm":
		return services.ErrInvalidScheduleTime.Error()
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

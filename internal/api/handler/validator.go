package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures come back as a *domain.ValidationError keyed by JSON field name.
type echoValidator struct {
	v   *validator.Validate
	now func() time.Time
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	ev := &echoValidator{v: validator.New(), now: time.Now}

	ev.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = ev.v.RegisterValidation("future_date", ev.futureDate)

	return ev
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	verr := domain.NewValidationError()
	for _, fe := range ve {
		if fe.Tag() == "nefield" {
			verr.Add(domain.NonFieldErrors, domain.MsgSameLocations)
			continue
		}
		verr.Add(fe.Field(), fieldError(fe))
	}
	return verr
}

// futureDate accepts YYYY-MM-DD strings for a day after today.
func (ev *echoValidator) futureDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return false
	}
	return d.Format(domain.DateLayout) > ev.now().Format(domain.DateLayout)
}

// fieldError converts a single FieldError into the message shown to clients.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return domain.MsgRequired
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "future_date":
		return domain.MsgFutureDate
	default:
		return fmt.Sprintf("Failed %s validation.", fe.Tag())
	}
}

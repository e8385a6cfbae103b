package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"delivery-management-api/apperr"
	"delivery-management-api/store"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	accountEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	driverEmailPattern  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	driverIDPattern     = regexp.MustCompile(`^[a-zA-Z0-9]{5,10}$`)
	phonePattern        = regexp.MustCompile(`^\d{10}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	must(v.RegisterValidation("notblank", validators.NotBlank))
	must(v.RegisterValidation("account_email", matches(accountEmailPattern)))
	must(v.RegisterValidation("driver_email", matches(driverEmailPattern)))
	must(v.RegisterValidation("driver_id", matches(driverIDPattern)))
	must(v.RegisterValidation("phone10", matches(phonePattern)))
	must(v.RegisterValidation("enum", validEnum))
	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// validEnum accepts fields whose type reports its own set of allowed values
func validEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(interface{ Valid() bool })
	return ok && e.Valid()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// validateInput checks in against its validate tags and turns the first
// failure into a Validation error using the field's message.
func validateInput(in any, messages map[string]string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		if msg, ok := messages[field]; ok {
			return apperr.New(apperr.Validation, "%s", msg)
		}
		return apperr.New(apperr.Validation, "Invalid %s", field)
	}
	return apperr.New(apperr.Validation, "%s", err.Error())
}

// notFound maps a store miss to a NotFound error carrying msg
func notFound(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.New(apperr.NotFound, "%s", msg)
	}
	return err
}

// Package forms binds submitted fields into typed structs and validates them,
// collecting field-level messages for re-rendering.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to its messages. The empty key holds errors
// not tied to a single field.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Get(field string) []string {
	return e[field]
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report errors under the submitted field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type cleaner interface {
	clean()
}

// Bind reads the request form into f, trims it and validates it.
func Bind(c *gin.Context, f any) Errors {
	errs := Errors{}
	if err := c.ShouldBind(f); err != nil {
		errs.Add("", "Invalid form submission.")
		return errs
	}
	if cl, ok := f.(cleaner); ok {
		cl.clean()
	}
	return Validate(f)
}

// Validate runs the struct's validate tags.
func Validate(f any) Errors {
	errs := Errors{}
	err := validate.Struct(f)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("", err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "The two password fields didn't match."
	case "excludesall":
		return "Enter a valid username."
	}
	return "Enter a valid value."
}

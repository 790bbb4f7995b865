// Package validators holds the syntactic checks applied to request payloads
// before they reach a service. Nothing here touches the database.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of a validation: a flag plus ordered messages.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Message joins the violations into a single sentence for a response.
func (r Result) Message() string {
	return strings.Join(r.Errors, "; ")
}

func (r *Result) add(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

func ok() Result { return Result{Valid: true} }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so messages match what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// check runs struct tags and converts field errors, in field order, to messages.
func check(s any) Result {
	res := ok()
	err := validate.Struct(s)
	if err == nil {
		return res
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		res.add("%s", err.Error())
		return res
	}
	for _, fe := range fieldErrs {
		res.add("%s", describe(fe))
	}
	return res
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hexadecimal", "len":
		return field + " is malformed"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps or plain dates. dateOnly reports
// whether the input carried no time of day.
func ParseDate(s string) (t time.Time, dateOnly bool, err error) {
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, s); err == nil {
			return t, layout == "2006-01-02", nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q", s)
}

func dateField(res *Result, name, v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	t, _, err := ParseDate(v)
	if err != nil {
		res.add("%s must be a valid date", name)
		return time.Time{}, false
	}
	return t, true
}

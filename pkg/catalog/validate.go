package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/imec-intel/hub/pkg/record"

	"github.com/go-playground/validator"
)

// NewValidator returns a validator that reports fields by their JSON name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	return v
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// decode reads a JSON object into rec. Unknown fields are ignored.
func decode(body []byte, rec any) error {
	err := json.Unmarshal(body, rec)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var dateErr *record.DateError
	switch {
	case errors.As(err, &syntaxErr):
		return &ValidationError{Reason: "malformed JSON"}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return &ValidationError{Reason: "payload must be a JSON object"}
		}
		return &ValidationError{
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
		}
	case errors.As(err, &dateErr):
		return &ValidationError{Field: badDateField(body, rec), Reason: dateErr.Error()}
	default:
		return &ValidationError{Reason: err.Error()}
	}
}

var dateType = reflect.TypeOf(record.Date{})

// badDateField returns the JSON name of the first Date field of rec whose
// value in body does not parse. encoding/json does not attach the field to
// errors raised by UnmarshalJSON.
func badDateField(body []byte, rec any) string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}

	t := reflect.TypeOf(rec)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft != dateType {
			continue
		}

		name := jsonName(f)
		v, ok := raw[name]
		if !ok || string(v) == "null" {
			continue
		}
		var d record.Date
		if d.UnmarshalJSON(v) != nil {
			return name
		}
	}
	return ""
}

// check runs struct validation and converts the first failure.
func check(v *validator.Validate, rec any) error {
	err := v.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}

	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Reason: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

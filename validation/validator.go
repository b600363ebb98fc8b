// Package validation checks request payloads against declarative struct tags
// using a shared go-playground validator.
//
// Besides the built-in tags it registers:
//
//	httpurl       http(s)://...
//	imageurl      http(s) URL ending in an image extension
//	isodate       ISO 8601 date (2006-01-02) or RFC 3339 date-time
//	contactemail  the address pattern accepted by the contact form
//
// Field names in messages come from the json tag, so errors read the way the
// client sent the payload.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var (
	httpURLPattern      = regexp.MustCompile(`^https?://.+`)
	imageURLPattern     = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp|svg|avif)(\?.*)?$`)
	contactEmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// ISO date layouts accepted by isodate, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidationError is one failed rule.
type ValidationError struct {
	field   string
	tag     string
	param   string
	message string
}

func (e *ValidationError) Field() string { return e.field }
func (e *ValidationError) Tag() string   { return e.tag }
func (e *ValidationError) Param() string { return e.param }
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed rule of one payload.
type RequestValidationError struct {
	errors []ValidationError
}

func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ToApiErr converts the collected failures into a 400 listing every field.
func (ve *RequestValidationError) ToApiErr() *errs.ApiErr {
	fields := make([]errs.FieldError, 0, len(ve.errors))
	for _, err := range ve.errors {
		fields = append(fields, errs.FieldError{Field: err.field, Message: err.message})
	}
	return errs.NewValidationError(fields)
}

// GetValidator returns the shared validator, building it on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister(v, "httpurl", func(fl validator.FieldLevel) bool {
			return httpURLPattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "imageurl", func(fl validator.FieldLevel) bool {
			return IsImageURL(fl.Field().String())
		})
		mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "contactemail", func(fl validator.FieldLevel) bool {
			return contactEmailPattern.MatchString(fl.Field().String())
		})

		validate = v
	})

	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// ValidateStruct validates s and returns nil or every violated rule.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{{field: "payload", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			message: translateError(fieldErr),
		}
	}
	return &RequestValidationError{errors: fieldErrors}
}

// Check is ValidateStruct returning a plain error, nil on success.
func Check(s interface{}) error {
	if verr := ValidateStruct(s); verr != nil {
		return verr.ToApiErr()
	}
	return nil
}

func IsImageURL(s string) bool {
	return imageURLPattern.MatchString(s)
}

func IsHTTPURL(s string) bool {
	return httpURLPattern.MatchString(s)
}

// ParseDate parses the date formats accepted by isodate.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO 8601 date %q", s)
}

var errorMessageTemplates = map[string]string{
	"required":     "%s is required",
	"email":        "%s must be a valid email address",
	"contactemail": "%s must be a valid email address",
	"httpurl":      "%s must be a valid http(s) URL",
	"imageurl":     "%s must be a valid image URL",
	"isodate":      "%s must be a valid ISO 8601 date",
	"uuid":         "%s must be a valid id",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}
	return translateSize(fe, field, tag, param)
}

// translateSize words min/max/len by the kind of value being measured.
func translateSize(fe validator.FieldError, field, tag, param string) string {
	var unit string
	switch fe.Kind() {
	case reflect.String:
		unit = " character"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " item"
	}
	if unit != "" && param != "1" {
		unit += "s"
	}

	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	case "len":
		return fmt.Sprintf("%s must contain exactly %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

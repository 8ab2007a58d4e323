// Package forms holds the declarative schemas of the admin forms and turns submitted
// values into typed records or field-keyed error messages.
package forms

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

var (
	validate = newValidator()
	strict   = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field errors are keyed by the name the browser and the API use
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})

	return v
}

// FieldErrors maps a field name to a human-readable message
type FieldErrors map[string]string

// Any reports whether at least one field failed
func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}

// Get returns the message for a field, or ""
func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

// add keeps the first message recorded for a field
func (fe FieldErrors) add(field, message string) {
	if _, exists := fe[field]; !exists {
		fe[field] = message
	}
}

// messageKeys maps field+tag to a translation key; "*" matches any field
var messageKeys = map[string]string{
	"fiscalCode.required": "invoice.errors.fiscal_code_required",
	"clientId.required":   "invoice.errors.client_required",
	"clientId.gte":        "invoice.errors.client_required",
	"*.gte":               "invoice.errors.min_zero",
	"*.utf8":              "invoice.errors.invalid_text",
	"*.required":          "invoice.errors.invalid",
}

func messageFor(ctx context.Context, field, tag string) string {
	if key, ok := messageKeys[field+"."+tag]; ok {
		return i18n.T(ctx, key)
	}
	if key, ok := messageKeys["*."+tag]; ok {
		return i18n.T(ctx, key)
	}
	return i18n.T(ctx, "invoice.errors.invalid")
}

// validateStruct runs the tag rules and appends the failures to fe
func validateStruct(ctx context.Context, s interface{}, fe FieldErrors) {
	err := validate.StructCtx(ctx, s)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.add("_", i18n.T(ctx, "invoice.errors.invalid"))
		return
	}
	for _, ve := range verrs {
		fe.add(ve.Field(), messageFor(ctx, ve.Field(), ve.Tag()))
	}
}

// plainEntities restores the characters the sanitizer escapes in plain text. Angle brackets
// stay escaped so encoded markup never turns into live markup.
var plainEntities = strings.NewReplacer("&amp;", "&", "&#34;", `"`, "&#39;", "'")

// cleanText trims the value and strips any markup
func cleanText(s string) string {
	return strings.TrimSpace(plainEntities.Replace(strict.Sanitize(strings.TrimSpace(s))))
}

// optionalText returns nil for blank values
func optionalText(s string) *string {
	s = cleanText(s)
	if s == "" {
		return nil
	}
	return &s
}

package partials

import (
	"context"
	"io"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/forms"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/components"

	"github.com/a-h/templ"
)

// Loading is the placeholder shown until a lazy fragment arrives
func Loading() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<p class="loading" role="status">`).Text(i18n.T(ctx, "common.loading")).Raw(`</p>`).
			Err()
	})
}

// ErrorBanner is the persistent inline error shown when a view could not load.
// Recovery is a manual reload.
func ErrorBanner(messageKey string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<div class="banner banner-error" role="alert"><strong>`).Text(i18n.T(ctx, messageKey)).Raw(`</strong> `).
			Text(i18n.T(ctx, "common.reload_hint")).
			Raw(`</div>`).
			Err()
	})
}

// FieldErrorID is the element id holding the message of a form field
func FieldErrorID(field string) string {
	return "error-" + field
}

// FieldError renders the message slot of one field; empty when the field is valid
func FieldError(field, message string) templ.Component {
	return fieldError(field, message, false)
}

// FieldErrorsOOB replaces every message slot of the form out of band, clearing the
// fields that are now valid.
func FieldErrorsOOB(fields []string, errs forms.FieldErrors) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, field := range fields {
			if err := fieldError(field, errs.Get(field), true).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func fieldError(field, message string, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := components.NewWriter(w)
		out.Raw(`<p class="field-error"`).Attr("id", FieldErrorID(field))
		if oob {
			out.Raw(` hx-swap-oob="true"`)
		}
		if message != "" {
			out.Raw(` role="alert"`)
		}
		return out.Raw(">").Text(message).Raw("</p>").Err()
	})
}

package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/forms"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/components"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/layouts"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/partials"

	"github.com/a-h/templ"
)

// InvoiceFormContainerID wraps the lazily loaded form
const InvoiceFormContainerID = "invoice-form-container"

// InvoiceCreatePage renders the page shell. The form starts disabled and is replaced by
// the fragment from /htmx/invoices/form once the client list has loaded.
func InvoiceCreatePage(ctx context.Context, csrfToken string) templ.Component {
	loading := InvoiceCreateView{State: StateLoadingReference, CSRFToken: csrfToken}

	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<section class="page"><header class="page-header"><h1>`).Text(i18n.T(ctx, "invoice.form.title")).Raw(`</h1><p>`).
			Text(i18n.T(ctx, "invoice.form.subtitle")).Raw(`</p></header>`).
			Raw(`<div`).Attr("id", InvoiceFormContainerID).
			Attr("hx-get", "/htmx/invoices/form").
			Attr("hx-trigger", "load").
			Attr("hx-swap", "innerHTML").
			Raw(`>`).
			Component(ctx, InvoiceForm(loading)).
			Raw(`</div></section>`).
			Err()
	})

	return layouts.Base(i18n.T(ctx, "invoice.form.title")+" | "+i18n.T(ctx, "app.brand"), csrfToken, layouts.NavNewInvoice, content)
}

// InvoiceFormFragment is the lazy fragment: the ready form, or the error banner when the
// client list could not be loaded.
func InvoiceFormFragment(view InvoiceCreateView) templ.Component {
	if !view.ShowsForm() {
		return partials.ErrorBanner("invoice.reference_error")
	}
	return InvoiceForm(view)
}

// InvoiceForm renders the creation form. Only fiscalCode and clientId are editable; the
// remaining invoice fields are shown read-only and are never submitted.
func InvoiceForm(view InvoiceCreateView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		disabled := view.IsFormDisabled()
		out := components.NewWriter(w)

		out.Raw(`<form id="invoice-form" class="form" action="/invoices" method="post" hx-post="/invoices" hx-swap="none" hx-disabled-elt="#invoice-form button"`).
			Attr("data-state", view.State.String()).
			Raw(`>`).
			Raw(`<input type="hidden" name="_csrf"`).Attr("value", view.CSRFToken).Raw(`>`)

		// Fiscal code
		out.Raw(`<div class="field"><label`).Attr("for", forms.FieldFiscalCode).Raw(`>`).Text(i18n.T(ctx, "invoice.form.fiscal_code")).Raw(`</label>`).
			Raw(`<input type="text" autocomplete="off"`).
			Attr("id", forms.FieldFiscalCode).
			Attr("name", forms.FieldFiscalCode).
			Attr("value", view.value(forms.FieldFiscalCode)).
			BoolAttr("disabled", view.State == StateLoadingReference).
			Raw(`>`).
			Component(ctx, partials.FieldError(forms.FieldFiscalCode, view.Errors.Get(forms.FieldFiscalCode))).
			Raw(`</div>`)

		// Client
		out.Raw(`<div class="field"><label`).Attr("for", forms.FieldClientID).Raw(`>`).Text(i18n.T(ctx, "invoice.form.client")).Raw(`</label>`).
			Raw(`<select`).
			Attr("id", forms.FieldClientID).
			Attr("name", forms.FieldClientID).
			BoolAttr("disabled", view.State == StateLoadingReference).
			Raw(`>`)
		switch {
		case view.State == StateLoadingReference:
			out.Raw(`<option value="">`).Text(i18n.T(ctx, "common.loading")).Raw(`</option>`)
		case len(view.Clients) == 0:
			out.Raw(`<option value="">`).Text(i18n.T(ctx, "invoice.form.no_clients")).Raw(`</option>`)
		default:
			out.Raw(`<option value="">`).Text(i18n.T(ctx, "invoice.form.select_client")).Raw(`</option>`)
		}
		selected := view.value(forms.FieldClientID)
		for _, c := range view.Clients {
			id := strconv.FormatUint(uint64(c.ID), 10)
			out.Raw(`<option`).Attr("value", id).BoolAttr("selected", id == selected).Raw(`>`).Text(c.Name).Raw(`</option>`)
		}
		out.Raw(`</select>`).
			Component(ctx, partials.FieldError(forms.FieldClientID, view.Errors.Get(forms.FieldClientID))).
			Raw(`</div>`)

		out.Component(ctx, readOnlyFields(view))

		// Actions
		out.Raw(`<div class="actions">`).
			Raw(`<button type="button" class="btn btn-secondary back" hx-get="/invoices" hx-target="body" hx-push-url="true"`).
			BoolAttr("disabled", disabled).Raw(`>`).Text(i18n.T(ctx, "common.back")).Raw(`</button>`).
			Raw(`<button type="submit" class="btn btn-primary"`).BoolAttr("disabled", disabled).Raw(`>`).
			Raw(`<span class="idle-label">`).Text(i18n.T(ctx, "invoice.form.submit")).Raw(`</span>`).
			Raw(`<span class="htmx-indicator">`).Text(i18n.T(ctx, "invoice.form.submitting")).Raw(`</span>`).
			Raw(`</button></div>`)

		return out.Raw(`</form>`).Err()
	})
}

// readOnlyFields shows the invoice attributes filled in later by receipt processing
func readOnlyFields(view InvoiceCreateView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := components.NewWriter(w)
		out.Raw(`<fieldset class="read-only" disabled><legend>`).Text(i18n.T(ctx, "invoice.form.read_only_hint")).Raw(`</legend>`)

		inputs := []struct {
			field    string
			label    string
			kind     string
			checkbox bool
		}{
			{forms.FieldInvoiceValue, "invoice.form.invoice_value", "number", false},
			{forms.FieldPDV, "invoice.form.pdv", "number", false},
			{forms.FieldStore, "invoice.form.store", "number", false},
			{forms.FieldNumCoupon, "invoice.form.num_coupon", "number", false},
			{forms.FieldCNPJ, "invoice.form.cnpj", "text", false},
			{forms.FieldCreditcard, "invoice.form.creditcard", "text", false},
			{forms.FieldHasItem, "invoice.form.has_item", "checkbox", true},
			{forms.FieldHasCreditcard, "invoice.form.has_creditcard", "checkbox", true},
			{forms.FieldHasPartnerCode, "invoice.form.has_partner_code", "checkbox", true},
		}

		for _, in := range inputs {
			if in.checkbox {
				out.Raw(`<label class="check"><input type="checkbox"`).Attr("name", in.field).
					BoolAttr("checked", view.value(in.field) != "").Raw(`> `).
					Text(i18n.T(ctx, in.label)).Raw(`</label>`)
				continue
			}
			out.Raw(`<div class="field"><label>`).Text(i18n.T(ctx, in.label)).Raw(`</label>`).
				Raw(`<input`).Attr("type", in.kind).Attr("name", in.field).Attr("value", view.value(in.field)).Raw(` readonly>`).
				Raw(`</div>`)
		}

		return out.Raw(`</fieldset>`).Err()
	})
}

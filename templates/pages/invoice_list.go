package pages

import (
	"context"
	"io"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/components"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/layouts"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/partials"

	"github.com/a-h/templ"
)

// InvoiceListPage renders the list shell; the table loads from /htmx/invoices
func InvoiceListPage(ctx context.Context, csrfToken string) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<section class="page"><header class="page-header"><h1>`).Text(i18n.T(ctx, "invoice.list.title")).Raw(`</h1>`).
			Raw(`<div class="header-actions">`).
			Raw(`<a class="btn btn-primary" href="/invoices/new">`).Text(i18n.T(ctx, "nav.new_invoice")).Raw(`</a>`).
			Raw(`<button type="button" class="btn btn-secondary" hx-post="/invoices/export" hx-target="#export-result" hx-swap="outerHTML" hx-disabled-elt="this">`).
			Text(i18n.T(ctx, "invoice.list.export")).Raw(`</button>`).
			Raw(`</div></header>`).
			Raw(`<p id="export-result" class="export-result"></p>`).
			Raw(`<div id="invoice-table" hx-get="/htmx/invoices" hx-trigger="load" hx-swap="outerHTML">`).
			Component(ctx, partials.Loading()).
			Raw(`</div></section>`).
			Err()
	})

	return layouts.Base(i18n.T(ctx, "invoice.list.title")+" | "+i18n.T(ctx, "app.brand"), csrfToken, layouts.NavInvoices, content)
}

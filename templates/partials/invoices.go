package partials

import (
	"context"
	"io"
	"strconv"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/components"

	"github.com/a-h/templ"
)

// InvoiceTable renders one page of invoices with its pager
func InvoiceTable(page *models.Page[models.Invoice]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := components.NewWriter(w)
		out.Raw(`<div id="invoice-table">`)

		if len(page.Data) == 0 {
			out.Raw(`<p class="empty">`).Text(i18n.T(ctx, "invoice.list.empty")).Raw(`</p></div>`)
			return out.Err()
		}

		out.Raw(`<table class="table"><thead><tr>`)
		for _, key := range []string{"id", "fiscal_code", "client", "value", "created"} {
			out.Raw("<th>").Text(i18n.T(ctx, "invoice.list."+key)).Raw("</th>")
		}
		out.Raw(`</tr></thead><tbody>`)
		for _, inv := range page.Data {
			clientName := ""
			if inv.Client != nil {
				clientName = inv.Client.Name
			}
			out.Raw("<tr><td>").Text(strconv.FormatUint(uint64(inv.ID), 10)).
				Raw("</td><td>").Text(inv.FiscalCode).
				Raw("</td><td>").Text(clientName).
				Raw(`</td><td class="num">`).Text(FormatCurrency(ctx, inv.InvoiceValue)).
				Raw("</td><td>").Text(FormatDate(ctx, inv.CreatedAt)).
				Raw("</td></tr>")
		}
		out.Raw(`</tbody></table>`)

		out.Component(ctx, pager(page.Page, page.TotalPages()))
		return out.Raw(`</div>`).Err()
	})
}

func pager(current, total int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if total <= 1 {
			return nil
		}

		link := func(out *components.Writer, target int, labelKey string) {
			out.Raw(`<button type="button" class="btn btn-link"`).
				Attr("hx-get", "/htmx/invoices?page="+strconv.Itoa(target)).
				Attr("hx-target", "#invoice-table").
				Attr("hx-swap", "outerHTML").
				Raw(">").Text(i18n.T(ctx, labelKey)).Raw("</button>")
		}

		out := components.NewWriter(w)
		out.Raw(`<nav class="pager">`)
		if current > 1 {
			link(out, current-1, "common.previous")
		}
		out.Raw(`<span>`).Text(i18n.T(ctx, "invoice.list.page_of", map[string]interface{}{"page": current, "pages": total})).Raw(`</span>`)
		if current < total {
			link(out, current+1, "common.next")
		}
		return out.Raw(`</nav>`).Err()
	})
}

// InvoiceListError replaces the table when the list could not be loaded
func InvoiceListError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<div id="invoice-table">`).
			Component(ctx, ErrorBanner("invoice.list.load_error")).
			Raw(`</div>`).
			Err()
	})
}

// ExportLink points at a finished invoice export
func ExportLink(result *services.StorageResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<p id="export-result" class="export-result">`).Text(i18n.T(ctx, "invoice.list.export_ready")).Raw(` `).
			Raw(`<a download`).Attr("href", result.URL).Raw(">").Text(result.FileName).Raw(`</a></p>`).
			Err()
	})
}

// ExportError is shown in place of the link when the export failed
func ExportError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<p id="export-result" class="export-result error">`).Text(i18n.T(ctx, "invoice.list.export_error")).Raw(`</p>`).
			Err()
	})
}

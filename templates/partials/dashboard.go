package partials

import (
	"context"
	"io"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/components"

	"github.com/a-h/templ"
)

// DashboardStats renders the loaded counters
func DashboardStats(stats *models.DashboardStats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cards := []struct {
			key   string
			value string
		}{
			{"incomplete_clients", FormatCount(ctx, stats.IncompleteClients)},
			{"complete_clients", FormatCount(ctx, stats.CompleteClients)},
			{"total_invoices", FormatCount(ctx, stats.TotalInvoices)},
			{"total_invoice_value", FormatCurrency(ctx, stats.TotalInvoiceValue)},
			{"drawn_vouchers", FormatCount(ctx, stats.DrawnVouchers)},
		}

		out := components.NewWriter(w)
		out.Raw(`<div id="dashboard-stats" class="stats-grid">`)
		for _, card := range cards {
			out.Raw(`<div class="stat-card"`).Attr("data-stat", card.key).Raw(`><span class="stat-label">`).
				Text(i18n.T(ctx, "dashboard.stats."+card.key)).
				Raw(`</span><span class="stat-value">`).Text(card.value).Raw(`</span></div>`)
		}
		return out.Raw(`</div>`).Err()
	})
}

// DashboardError replaces the counters when they could not be loaded
func DashboardError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<div id="dashboard-stats">`).
			Component(ctx, ErrorBanner("dashboard.load_error")).
			Raw(`</div>`).
			Err()
	})
}

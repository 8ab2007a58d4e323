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

// Dashboard renders the dashboard shell in its loading state
func Dashboard(ctx context.Context, csrfToken string) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewWriter(w).
			Raw(`<section class="page"><header class="page-header"><h1>`).Text(i18n.T(ctx, "dashboard.title")).Raw(`</h1></header>`).
			Raw(`<div id="dashboard-stats" hx-get="/htmx/dashboard/stats" hx-trigger="load" hx-swap="outerHTML">`).
			Component(ctx, partials.Loading()).
			Raw(`</div></section>`).
			Err()
	})

	return layouts.Base(i18n.T(ctx, "dashboard.title")+" | "+i18n.T(ctx, "app.brand"), csrfToken, layouts.NavDashboard, content)
}

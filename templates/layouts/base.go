package layouts

import (
	"context"
	"io"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/middleware"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/components"

	"github.com/a-h/templ"
)

// HTMXScriptURL is the pinned htmx build loaded by every page
const HTMXScriptURL = middleware.ScriptCDN + "/htmx.org@2.0.4"

// Navigation entries, matched against the active argument of Base
const (
	NavDashboard  = "dashboard"
	NavInvoices   = "invoices"
	NavNewInvoice = "new_invoice"
)

var navItems = []struct {
	key  string
	href string
}{
	{NavDashboard, "/dashboard"},
	{NavInvoices, "/invoices"},
	{NavNewInvoice, "/invoices/new"},
}

// Base is the admin shell: head assets, navigation, toast container and the page content.
// htmx requests send the CSRF token through hx-headers on the body.
func Base(title, csrfToken, active string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		nonce := middleware.GetNonce(ctx)
		lang := i18n.GetLocale(ctx)
		htmlLang := "pt-BR"
		if lang == i18n.LangEN {
			htmlLang = "en"
		}

		out := components.NewWriter(w)
		out.Raw("<!DOCTYPE html><html").Attr("lang", htmlLang).Raw("><head>").
			Raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`).
			Raw("<title>").Text(title).Raw("</title>").
			Raw(`<link rel="stylesheet"`).Attr("href", middleware.AssetURL(ctx, middleware.StyleSheetPath)).Raw(">").
			Raw("<script").Attr("src", HTMXScriptURL).Attr("nonce", nonce).Raw("></script>").
			Raw("<script defer").Attr("src", middleware.AssetURL(ctx, middleware.AppScriptPath)).Attr("nonce", nonce).Raw("></script>").
			Raw("</head><body").Attr("hx-headers", components.JSON(map[string]string{middleware.CSRFHeader: csrfToken})).Raw(">")

		out.Raw(`<header class="topbar"><a class="brand" href="/dashboard">`).Text(i18n.T(ctx, "app.brand")).Raw(`</a><nav>`)
		for _, item := range navItems {
			out.Raw("<a").Attr("href", item.href)
			if item.key == active {
				out.Raw(` class="active" aria-current="page"`)
			}
			out.Raw(">").Text(i18n.T(ctx, "nav."+item.key)).Raw("</a>")
		}
		out.Raw(`</nav></header>`)

		out.Raw(`<div id="toasts" class="toasts" aria-live="polite"></div>`).
			Raw(`<main class="container">`).
			Component(ctx, content).
			Raw(`</main></body></html>`)

		return out.Err()
	})
}

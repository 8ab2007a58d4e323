package handlers

import (
	"net/http"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/backoffice"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/toast"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// render writes a component through echo's response so that header hooks (toasts) run first
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response())
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// getConfig returns the config set by the server middleware
func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{ClientFetchLimit: config.DefaultClientFetchLimit}
}

// notifyFailure completes the user notification for a failed backoffice call. Reported
// errors already queued their toast in the data layer; anything else gets the generic one.
func notifyFailure(c echo.Context, op string, err error) {
	if backoffice.IsReported(err) {
		return
	}
	ctx := c.Request().Context()
	toast.Error(ctx, i18n.T(ctx, "toast.unexpected"))
	log := logger.WithComponent("handlers")
	log.Error().Err(err).Str("op", op).Msg("Unexpected backoffice failure")
}

// redirect navigates the browser, through HX-Redirect for htmx requests
func redirect(c echo.Context, to string) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", to)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, to)
}

package handlers

import (
	"net/http"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/middleware"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/backoffice"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/pages"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/partials"

	"github.com/labstack/echo/v4"
)

// HomeHandler sends the admin to the dashboard
func HomeHandler(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// DashboardHandler renders the main dashboard
func DashboardHandler(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)

	component := pages.Dashboard(c.Request().Context(), csrfToken)
	return render(c, http.StatusOK, component)
}

// DashboardStatsHTMX returns the counters, or the error banner when they could not be loaded
func DashboardStatsHTMX(c echo.Context) error {
	stats, err := backoffice.Default.FetchDashboardStats(c.Request().Context())
	if err != nil {
		notifyFailure(c, "fetch dashboard stats", err)
		return render(c, http.StatusOK, partials.DashboardError())
	}

	return render(c, http.StatusOK, partials.DashboardStats(stats))
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/db"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/forms"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/labstack/echo/v4"
)

// APIError is the error body of every API response
type APIError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func apiError(c echo.Context, status int, messageKey string, fieldErrs map[string]string) error {
	ctx := c.Request().Context()
	return c.JSON(status, APIError{Message: i18n.T(ctx, messageKey), Errors: fieldErrs})
}

func paginationFromQuery(c echo.Context, defaultLimit, maxLimit int) services.Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return services.NewPagination(page, limit, defaultLimit, maxLimit)
}

// APIListClientsHandler returns a page of clients ordered by name
func APIListClientsHandler(c echo.Context) error {
	p := paginationFromQuery(c, services.DefaultClientPageSize, services.MaxClientPageSize)

	page, err := services.ListClients(db.DB, p)
	if err != nil {
		log := logger.WithComponent("api")
		log.Error().Err(err).Msg("Failed to list clients")
		return apiError(c, http.StatusInternalServerError, "api.errors.internal", nil)
	}

	return c.JSON(http.StatusOK, page)
}

// APIListInvoicesHandler returns a page of invoices, newest first
func APIListInvoicesHandler(c echo.Context) error {
	p := paginationFromQuery(c, services.DefaultInvoicePageSize, services.MaxInvoicePageSize)

	page, err := services.ListInvoices(db.DB, p)
	if err != nil {
		log := logger.WithComponent("api")
		log.Error().Err(err).Msg("Failed to list invoices")
		return apiError(c, http.StatusInternalServerError, "api.errors.internal", nil)
	}

	return c.JSON(http.StatusOK, page)
}

// APICreateInvoiceHandler registers an invoice from {fiscalCode, clientId}
func APICreateInvoiceHandler(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.WithComponent("api")

	var payload forms.InvoicePayload
	if err := c.Bind(&payload); err != nil {
		return apiError(c, http.StatusBadRequest, "api.errors.invalid_body", nil)
	}

	if fieldErrs := forms.ValidatePayload(ctx, &payload); fieldErrs.Any() {
		return apiError(c, http.StatusUnprocessableEntity, "api.errors.validation_failed", fieldErrs)
	}

	invoice, err := services.CreateInvoice(db.DB, services.CreateInvoiceInput{
		FiscalCode: payload.FiscalCode,
		ClientID:   uint(payload.ClientID),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return apiError(c, http.StatusUnprocessableEntity, "api.errors.client_not_found",
				map[string]string{forms.FieldClientID: i18n.T(ctx, "api.errors.client_not_found")})
		case errors.Is(err, services.ErrDuplicateFiscalCode):
			return apiError(c, http.StatusConflict, "api.errors.duplicate_fiscal_code",
				map[string]string{forms.FieldFiscalCode: i18n.T(ctx, "api.errors.duplicate_fiscal_code")})
		default:
			log.Error().Err(err).Msg("Failed to create invoice")
			return apiError(c, http.StatusInternalServerError, "api.errors.internal", nil)
		}
	}

	log.Info().Uint("invoice_id", invoice.ID).Uint("client_id", invoice.ClientID).Msg("Invoice registered")
	return c.JSON(http.StatusCreated, invoice)
}

// APIDashboardStatsHandler returns the aggregate counters
func APIDashboardStatsHandler(c echo.Context) error {
	stats, err := services.GetDashboardStats(db.DB)
	if err != nil {
		log := logger.WithComponent("api")
		log.Error().Err(err).Msg("Failed to compute dashboard stats")
		return apiError(c, http.StatusInternalServerError, "api.errors.internal", nil)
	}

	return c.JSON(http.StatusOK, stats)
}

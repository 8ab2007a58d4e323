package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/forms"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/middleware"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/backoffice"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/pages"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/templates/partials"

	"github.com/labstack/echo/v4"
)

// InvoiceListPath is where the browser lands after creating an invoice
const InvoiceListPath = "/invoices"

const exportLinkTTL = 15 * time.Minute

// NewInvoicePageHandler renders the creation page shell
func NewInvoicePageHandler(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)
	return render(c, http.StatusOK, pages.InvoiceCreatePage(c.Request().Context(), csrfToken))
}

// InvoiceFormHTMX loads the client list and returns the form, or the error banner
func InvoiceFormHTMX(c echo.Context) error {
	ctx := c.Request().Context()
	cfg := getConfig(c)

	view := pages.InvoiceCreateView{
		State:     pages.StateLoadingReference,
		CSRFToken: middleware.GetCSRFToken(c),
	}

	clients, err := backoffice.Default.FetchClients(ctx, backoffice.ListParams{Limit: cfg.ClientFetchLimit})
	if err != nil {
		notifyFailure(c, "fetch clients", err)
		view.State = pages.StateReferenceError
		return render(c, http.StatusOK, pages.InvoiceFormFragment(view))
	}

	view.State = pages.StateReady
	view.Clients = forms.ProjectClients(clients.Data)
	return render(c, http.StatusOK, pages.InvoiceFormFragment(view))
}

// CreateInvoiceHandler validates the form and creates the invoice through the backoffice API
func CreateInvoiceHandler(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.WithComponent("invoices")

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	form, fieldErrs := forms.ValidateInvoice(ctx, values)
	if fieldErrs.Any() {
		log.Debug().Interface("errors", fieldErrs).Msg("Invoice form rejected")
		if !isHTMX(c) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, fieldErrs)
		}
		return render(c, http.StatusOK, partials.FieldErrorsOOB(forms.InvoiceFields, fieldErrs))
	}

	log.Debug().Stringer("state", pages.StateSubmitting).Str("fiscal_code", form.FiscalCode).Msg("Submitting invoice")
	invoice, err := backoffice.Default.CreateInvoice(ctx, form.Payload())
	if err != nil {
		log.Debug().Stringer("state", pages.StateSubmitError).Err(err).Msg("Invoice not created")
		notifyFailure(c, "create invoice", err)

		status := http.StatusBadGateway
		apiFieldErrs := forms.FieldErrors{}
		var apiErr *backoffice.Error
		if errors.As(err, &apiErr) && apiErr.Kind == backoffice.KindReported {
			status = apiErr.Status
			for field, message := range apiErr.Fields {
				apiFieldErrs[field] = message
			}
		}

		if !isHTMX(c) {
			return echo.NewHTTPError(status, i18n.T(ctx, "invoice.submit_error"))
		}
		return render(c, http.StatusOK, partials.FieldErrorsOOB(forms.InvoiceFields, apiFieldErrs))
	}

	log.Info().Stringer("state", pages.StateSuccess).Uint("invoice_id", invoice.ID).Msg("Invoice created")
	return redirect(c, InvoiceListPath)
}

// InvoicesPageHandler renders the invoice list shell
func InvoicesPageHandler(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)
	return render(c, http.StatusOK, pages.InvoiceListPage(c.Request().Context(), csrfToken))
}

// InvoiceTableHTMX returns one page of the invoice table
func InvoiceTableHTMX(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	p := services.NewPagination(page, limit, services.DefaultInvoicePageSize, services.MaxInvoicePageSize)

	invoices, err := backoffice.Default.FetchInvoices(ctx, backoffice.ListParams{Page: p.Page, Limit: p.Limit})
	if err != nil {
		notifyFailure(c, "fetch invoices", err)
		return render(c, http.StatusOK, partials.InvoiceListError())
	}

	return render(c, http.StatusOK, partials.InvoiceTable(invoices))
}

// ExportInvoicesHandler builds an XLSX export of the latest invoices and returns its link
func ExportInvoicesHandler(c echo.Context) error {
	ctx := c.Request().Context()
	cfg := getConfig(c)

	invoices, err := backoffice.Default.FetchInvoices(ctx, backoffice.ListParams{Page: 1, Limit: cfg.ClientFetchLimit})
	if err != nil {
		notifyFailure(c, "export invoices", err)
		return render(c, http.StatusOK, partials.ExportError())
	}

	result, err := services.ExportInvoices(ctx, services.Storage, invoices.Data)
	if err != nil {
		notifyFailure(c, "export invoices", err)
		return render(c, http.StatusOK, partials.ExportError())
	}

	log := logger.WithComponent("invoices")
	log.Info().Str("key", result.Key).Int("invoices", len(invoices.Data)).Msg("Invoices exported")
	return render(c, http.StatusOK, partials.ExportLink(result))
}

// DownloadExportHandler streams a stored export
func DownloadExportHandler(c echo.Context) error {
	key := strings.TrimPrefix(c.Param("*"), "/")
	if key == "" || !strings.HasPrefix(key, "exports/") {
		return echo.NewHTTPError(http.StatusNotFound, "Export not found")
	}

	ctx := c.Request().Context()

	// Remote storage hands out a presigned URL; local exports are streamed from disk
	if url, err := services.Storage.GetSignedURL(ctx, key, exportLinkTTL); err == nil && !strings.HasPrefix(url, services.ExportDownloadPrefix) {
		return c.Redirect(http.StatusFound, url)
	}

	reader, contentType, err := services.Storage.Get(ctx, key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Export not found")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+keyFileName(key)+`"`)
	return c.Stream(http.StatusOK, contentType, reader)
}

func keyFileName(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}

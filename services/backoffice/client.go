// Package backoffice is the admin's data-access layer: a typed client for the backoffice JSON API.
package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/forms"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/toast"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// APIKeyHeader carries the backoffice API key
const APIKeyHeader = "X-API-Key"

// ListParams selects a page of a list endpoint
type ListParams struct {
	Limit int
	Page  int
}

func (p ListParams) query() string {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// API is the set of backoffice calls used by the admin pages
type API interface {
	FetchClients(ctx context.Context, params ListParams) (*models.Page[models.Client], error)
	FetchInvoices(ctx context.Context, params ListParams) (*models.Page[models.Invoice], error)
	CreateInvoice(ctx context.Context, payload forms.InvoicePayload) (*models.Invoice, error)
	FetchDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// Default is the process-wide client, set by Initialize
var Default API

// Initialize builds the default client from configuration
func Initialize(cfg *config.Config) {
	Default = NewHTTPClient(cfg.APIBaseURL, cfg.APIKey, cfg.APITimeout)
}

// HTTPClient implements API over HTTP
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	group   singleflight.Group
	log     zerolog.Logger
}

// NewHTTPClient creates a client for the API rooted at baseURL (e.g. http://host/api)
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     logger.WithComponent("backoffice"),
	}
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// FetchClients loads a page of clients. Identical concurrent calls share one upstream request.
func (c *HTTPClient) FetchClients(ctx context.Context, params ListParams) (*models.Page[models.Client], error) {
	// The answer depends on Accept-Language, so callers only share a fetch within a locale
	key := i18n.GetLocale(ctx) + ":clients" + params.query()

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		var page models.Page[models.Client]
		// Detached from the caller's cancellation: followers must not fail because the leader left
		err := c.do(context.WithoutCancel(ctx), "fetch clients", http.MethodGet, "/clients"+params.query(), nil, &page)
		return &page, err
	})
	if shared {
		c.log.Debug().Str("key", key).Msg("Shared in-flight client fetch")
	}
	if err != nil {
		return nil, c.report(ctx, err)
	}
	return v.(*models.Page[models.Client]), nil
}

// FetchInvoices loads a page of invoices, newest first
func (c *HTTPClient) FetchInvoices(ctx context.Context, params ListParams) (*models.Page[models.Invoice], error) {
	var page models.Page[models.Invoice]
	if err := c.do(ctx, "fetch invoices", http.MethodGet, "/invoices"+params.query(), nil, &page); err != nil {
		return nil, c.report(ctx, err)
	}
	return &page, nil
}

// CreateInvoice registers an invoice from a fiscal code and a client
func (c *HTTPClient) CreateInvoice(ctx context.Context, payload forms.InvoicePayload) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := c.do(ctx, "create invoice", http.MethodPost, "/invoices", payload, &invoice); err != nil {
		return nil, c.report(ctx, err)
	}
	return &invoice, nil
}

// FetchDashboardStats loads the aggregate dashboard counters
func (c *HTTPClient) FetchDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, "fetch dashboard stats", http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, c.report(ctx, err)
	}
	return &stats, nil
}

// report queues the toast for API errors on the caller's request and logs the failure
func (c *HTTPClient) report(ctx context.Context, err error) error {
	apiErr, ok := err.(*Error)
	if !ok {
		return err
	}

	if apiErr.Kind == KindReported {
		toast.Error(ctx, apiErr.Message)
		c.log.Warn().Str("op", apiErr.Op).Int("status", apiErr.Status).Str("message", apiErr.Message).Msg("Backoffice request failed")
	} else {
		c.log.Error().Err(apiErr.Err).Str("op", apiErr.Op).Msg("Backoffice request error")
	}
	return apiErr
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return unexpected(op, fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return unexpected(op, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", i18n.GetLocale(ctx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return unexpected(op, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		// An undecodable error body still counts as an API answer
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		message := eb.Message
		if message == "" {
			message = i18n.T(ctx, "toast.api_error")
		}
		return &Error{
			Kind:    KindReported,
			Op:      op,
			Status:  resp.StatusCode,
			Message: message,
			Fields:  eb.Errors,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return unexpected(op, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

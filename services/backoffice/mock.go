package backoffice

import (
	"context"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/forms"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"

	"github.com/stretchr/testify/mock"
)

// MockAPI is a testify mock of API for handler tests
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) FetchClients(ctx context.Context, params ListParams) (*models.Page[models.Client], error) {
	args := m.Called(ctx, params)
	page, _ := args.Get(0).(*models.Page[models.Client])
	return page, args.Error(1)
}

func (m *MockAPI) FetchInvoices(ctx context.Context, params ListParams) (*models.Page[models.Invoice], error) {
	args := m.Called(ctx, params)
	page, _ := args.Get(0).(*models.Page[models.Invoice])
	return page, args.Error(1)
}

func (m *MockAPI) CreateInvoice(ctx context.Context, payload forms.InvoicePayload) (*models.Invoice, error) {
	args := m.Called(ctx, payload)
	invoice, _ := args.Get(0).(*models.Invoice)
	return invoice, args.Error(1)
}

func (m *MockAPI) FetchDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.DashboardStats)
	return stats, args.Error(1)
}

var _ API = (*MockAPI)(nil)

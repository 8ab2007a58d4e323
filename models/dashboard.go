package models

import "github.com/shopspring/decimal"

// DashboardStats holds the aggregate counters shown on the dashboard
type DashboardStats struct {
	IncompleteClients int64           `json:"incompleteClients"`
	CompleteClients   int64           `json:"completeClients"`
	TotalInvoices     int64           `json:"totalInvoices"`
	TotalInvoiceValue decimal.Decimal `json:"totalInvoiceValue"`
	DrawnVouchers     int64           `json:"drawnVouchers"`
}

// TotalClients is the number of registered clients regardless of completeness
func (s DashboardStats) TotalClients() int64 {
	return s.IncompleteClients + s.CompleteClients
}

package services

import (
	"fmt"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDashboardStats computes the aggregate counters shown on the dashboard
func GetDashboardStats(db *gorm.DB) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	if err := db.Model(&models.Client{}).Where("is_complete = ?", true).Count(&stats.CompleteClients).Error; err != nil {
		return nil, fmt.Errorf("failed to count complete clients: %w", err)
	}

	if err := db.Model(&models.Client{}).Where("is_complete = ?", false).Count(&stats.IncompleteClients).Error; err != nil {
		return nil, fmt.Errorf("failed to count incomplete clients: %w", err)
	}

	if err := db.Model(&models.Invoice{}).Count(&stats.TotalInvoices).Error; err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	var total decimal.NullDecimal
	if err := db.Model(&models.Invoice{}).Select("SUM(invoice_value)").Row().Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to sum invoice values: %w", err)
	}
	stats.TotalInvoiceValue = decimal.Zero
	if total.Valid {
		stats.TotalInvoiceValue = total.Decimal.Round(2)
	}

	if err := db.Model(&models.Voucher{}).Where("drawn_at IS NOT NULL").Count(&stats.DrawnVouchers).Error; err != nil {
		return nil, fmt.Errorf("failed to count drawn vouchers: %w", err)
	}

	return &stats, nil
}

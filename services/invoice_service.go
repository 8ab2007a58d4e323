package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"

	"gorm.io/gorm"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrDuplicateFiscalCode = errors.New("an invoice with this fiscal code already exists")
	ErrInvoiceNotFound     = errors.New("invoice not found")
)

// CreateInvoiceInput is the data accepted when registering a new invoice
type CreateInvoiceInput struct {
	FiscalCode string
	ClientID   uint
}

// CreateInvoice registers an invoice for an existing client. Receipt details start empty
// and are filled in once the receipt is processed.
func CreateInvoice(db *gorm.DB, input CreateInvoiceInput) (*models.Invoice, error) {
	fiscalCode := strings.TrimSpace(input.FiscalCode)

	var invoice models.Invoice
	err := db.Transaction(func(tx *gorm.DB) error {
		exists, err := ClientExists(tx, input.ClientID)
		if err != nil {
			return fmt.Errorf("failed to check client: %w", err)
		}
		if !exists {
			return ErrClientNotFound
		}

		var count int64
		if err := tx.Model(&models.Invoice{}).Where("fiscal_code = ?", fiscalCode).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check fiscal code: %w", err)
		}
		if count > 0 {
			return ErrDuplicateFiscalCode
		}

		invoice = models.Invoice{
			FiscalCode: fiscalCode,
			ClientID:   input.ClientID,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			// A concurrent create with the same code passed the check above
			if isUniqueViolation(err) {
				return ErrDuplicateFiscalCode
			}
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// isUniqueViolation reports whether err comes from a unique index. gorm translates it for
// the local sqlite driver; libsql errors only carry the sqlite message.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetInvoiceByID loads an invoice with its client
func GetInvoiceByID(db *gorm.DB, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := db.Preload("Client").First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices returns a page of invoices, newest first, with their clients
func ListInvoices(db *gorm.DB, p Pagination) (models.Page[models.Invoice], error) {
	result := models.Page[models.Invoice]{Page: p.Page, Limit: p.Limit, Data: []models.Invoice{}}

	if err := db.Model(&models.Invoice{}).Count(&result.Total).Error; err != nil {
		return result, err
	}

	err := db.Preload("Client").
		Order("created_at DESC").Order("id DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&result.Data).Error

	return result, err
}

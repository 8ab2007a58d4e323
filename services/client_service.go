package services

import (
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"

	"gorm.io/gorm"
)

// Pagination bounds accepted by the list endpoints
const (
	DefaultClientPageSize  = 50
	MaxClientPageSize      = 1000
	DefaultInvoicePageSize = 20
	MaxInvoicePageSize     = 1000
)

// Pagination is a normalized page/limit pair
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination clamps page and limit; zero or negative values take the defaults
func NewPagination(page, limit, defaultLimit, maxLimit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ListClients returns a page of clients ordered by name
func ListClients(db *gorm.DB, p Pagination) (models.Page[models.Client], error) {
	result := models.Page[models.Client]{Page: p.Page, Limit: p.Limit, Data: []models.Client{}}

	if err := db.Model(&models.Client{}).Count(&result.Total).Error; err != nil {
		return result, err
	}

	err := db.Order("name ASC").Order("id ASC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&result.Data).Error

	return result, err
}

// ClientExists reports whether a client with the given ID is registered
func ClientExists(db *gorm.DB, clientID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Client{}).Where("id = ?", clientID).Count(&count).Error
	return count > 0, err
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a fiscal receipt registered for a client
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FiscalCode string  `gorm:"not null;uniqueIndex" json:"fiscalCode"`
	ClientID   uint    `gorm:"not null;index" json:"clientId"`
	Client     *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Receipt details, filled in by the receipt processing pipeline
	InvoiceValue   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"invoiceValue"`
	HasItem        bool            `gorm:"not null;default:false" json:"hasItem"`
	HasCreditcard  bool            `gorm:"not null;default:false" json:"hasCreditcard"`
	HasPartnerCode bool            `gorm:"not null;default:false" json:"hasPartnerCode"`
	PDV            *int            `json:"pdv"`
	Store          *int            `json:"store"`
	NumCoupon      *int            `json:"numCoupon"`
	CNPJ           *string         `json:"cnpj"`
	Creditcard     *string         `json:"creditcard"`

	Vouchers []Voucher `gorm:"foreignKey:InvoiceID" json:"-"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Voucher is a sweepstakes ticket earned through an invoice
type Voucher struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	Code      string     `gorm:"not null;uniqueIndex" json:"code"`
	InvoiceID uint       `gorm:"not null;index" json:"invoiceId"`
	ClientID  uint       `gorm:"not null;index" json:"clientId"`
	DrawnAt   *time.Time `gorm:"index" json:"drawnAt,omitempty"`
}

// BeforeCreate hook to generate the voucher code
func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.Code == "" {
		v.Code = uuid.New().String()
	}
	return nil
}

// IsDrawn reports whether the voucher was selected in a draw
func (v *Voucher) IsDrawn() bool {
	return v.DrawnAt != nil
}

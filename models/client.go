package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Client is a shopper registered in the promotion
type Client struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Name      string     `gorm:"not null" json:"name"`
	CPF       *string    `gorm:"uniqueIndex" json:"cpf,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`

	// IsComplete is derived on save; the dashboard counts complete and incomplete registrations
	IsComplete bool `gorm:"not null;default:false;index" json:"isComplete"`

	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeSave keeps IsComplete in sync with the registration fields
func (c *Client) BeforeSave(tx *gorm.DB) error {
	c.IsComplete = c.HasCompleteRegistration()
	return nil
}

// HasCompleteRegistration reports whether every registration field is filled
func (c *Client) HasCompleteRegistration() bool {
	return filled(c.CPF) && filled(c.Email) && filled(c.Phone) && c.BirthDate != nil
}

func filled(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

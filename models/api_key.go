package models

import "time"

// APIKeyPrefixLength is the number of leading characters stored in clear to look a key up
const APIKeyPrefixLength = 8

// APIKey grants access to the backoffice JSON API
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Name       string     `gorm:"not null" json:"name"`
	Prefix     string     `gorm:"not null;uniqueIndex" json:"prefix"`
	Hash       string     `gorm:"not null" json:"-"`
	IsActive   bool       `gorm:"not null;default:true" json:"isActive"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// APIKeyLength is the length of a generated key in bytes (64 chars hex)
	APIKeyLength = 32
)

var ErrInvalidAPIKey = errors.New("invalid API key")

// HashAPIKey hashes a key using bcrypt
func HashAPIKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(bytes), nil
}

// GenerateAPIKeyToken generates a cryptographically secure random key
func GenerateAPIKeyToken() (string, error) {
	bytes := make([]byte, APIKeyLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CreateAPIKey stores a new key and returns it in clear. The clear key is never stored.
func CreateAPIKey(db *gorm.DB, name string) (*models.APIKey, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", errors.New("API key name is required")
	}

	key, err := GenerateAPIKeyToken()
	if err != nil {
		return nil, "", err
	}

	hash, err := HashAPIKey(key)
	if err != nil {
		return nil, "", err
	}

	apiKey := &models.APIKey{
		Name:     name,
		Prefix:   key[:models.APIKeyPrefixLength],
		Hash:     hash,
		IsActive: true,
	}
	if err := db.Create(apiKey).Error; err != nil {
		return nil, "", fmt.Errorf("failed to store API key: %w", err)
	}

	return apiKey, key, nil
}

// VerifyAPIKey looks a key up by prefix and checks it against the stored hash
func VerifyAPIKey(db *gorm.DB, key string) (*models.APIKey, error) {
	if len(key) <= models.APIKeyPrefixLength {
		return nil, ErrInvalidAPIKey
	}

	var apiKey models.APIKey
	err := db.Where("prefix = ? AND is_active = ?", key[:models.APIKeyPrefixLength], true).First(&apiKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(apiKey.Hash), []byte(key)) != nil {
		return nil, ErrInvalidAPIKey
	}

	now := time.Now()
	if err := db.Model(&apiKey).UpdateColumn("last_used_at", now).Error; err != nil {
		log := logger.WithComponent("api_keys")
		log.Warn().Err(err).Str("prefix", apiKey.Prefix).Msg("Failed to record API key use")
	}
	apiKey.LastUsedAt = &now

	return &apiKey, nil
}

// RevokeAPIKey deactivates a key by name
func RevokeAPIKey(db *gorm.DB, name string) error {
	result := db.Model(&models.APIKey{}).Where("name = ?", name).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidAPIKey
	}
	return nil
}

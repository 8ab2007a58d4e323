package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/db"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/labstack/echo/v4"
)

const (
	// APIKeyHeader carries the key on every API request
	APIKeyHeader = "X-API-Key"
	// ContextKeyAPIKey is the context key for the authenticated key
	ContextKeyAPIKey = "api_key"
	// AdminKeyName names the key configured for the admin pages
	AdminKeyName = "admin"
)

// IsAdminKeyRequest returns a skipper matching requests that carry the admin's configured
// key. Admin traffic is limited at the admin routes, per user IP, not at the API.
func IsAdminKeyRequest(cfg *config.Config) func(c echo.Context) bool {
	return func(c echo.Context) bool {
		return isAdminKey(cfg, c.Request().Header.Get(APIKeyHeader))
	}
}

func isAdminKey(cfg *config.Config, key string) bool {
	return cfg.APIKey != "" && key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) == 1
}

// RequireAPIKey authenticates API callers. The key configured for the admin itself is
// accepted directly; any other key must match an active stored key.
func RequireAPIKey(cfg *config.Config) echo.MiddlewareFunc {
	log := logger.WithComponent("auth")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(APIKeyHeader)
			if key == "" {
				return unauthorized(c)
			}

			if isAdminKey(cfg, key) {
				c.Set(ContextKeyAPIKey, &models.APIKey{Name: AdminKeyName, Prefix: AdminKeyName, IsActive: true})
				return next(c)
			}

			apiKey, err := services.VerifyAPIKey(db.DB, key)
			if err != nil {
				if !errors.Is(err, services.ErrInvalidAPIKey) {
					log.Error().Err(err).Msg("API key lookup failed")
				}
				return unauthorized(c)
			}

			c.Set(ContextKeyAPIKey, apiKey)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	message := i18n.T(c.Request().Context(), "api.errors.unauthorized")
	return c.JSON(http.StatusUnauthorized, map[string]string{"message": message})
}

// GetAPIKey retrieves the authenticated key from context
func GetAPIKey(c echo.Context) *models.APIKey {
	apiKey, ok := c.Get(ContextKeyAPIKey).(*models.APIKey)
	if !ok {
		return nil
	}
	return apiKey
}

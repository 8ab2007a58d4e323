package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"

	"github.com/labstack/echo/v4"
)

type contextKey string

// NonceKey holds the per-request script nonce in the echo and request contexts
const NonceKey contextKey = "csp_nonce"

// ScriptCDN is the only third-party origin allowed to serve scripts (htmx)
const ScriptCDN = "https://unpkg.com"

// GenerateNonce returns 16 random bytes, base64url encoded
func GenerateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ContentSecurityPolicy builds the admin policy. Scripts load from the app itself (app.js),
// from ScriptCDN (htmx) and, when nonce is set, from tags carrying it. Fragments are
// fetched from the same origin only.
func ContentSecurityPolicy(nonce string) string {
	scripts := []string{"script-src", "'self'", ScriptCDN}
	if nonce != "" {
		scripts = append(scripts, "'nonce-"+nonce+"'")
	}

	directives := []string{
		"default-src 'self'",
		strings.Join(scripts, " "),
		// htmx injects its indicator style inline
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"connect-src 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}
	return strings.Join(directives, "; ")
}

// CSPNonce sets a fresh nonce on every request and sends the matching policy
func CSPNonce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				// Without a nonce only external scripts from allowed origins run
				log := logger.WithComponent("csp")
				log.Error().Err(err).Msg("Failed to generate nonce")
				nonce = ""
			}

			c.Set(string(NonceKey), nonce)
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), NonceKey, nonce)))
			c.Response().Header().Set("Content-Security-Policy", ContentSecurityPolicy(nonce))

			return next(c)
		}
	}
}

// GetNonce returns the request nonce, or "" outside CSPNonce
func GetNonce(ctx context.Context) string {
	if val, ok := ctx.Value(NonceKey).(string); ok {
		return val
	}
	return ""
}

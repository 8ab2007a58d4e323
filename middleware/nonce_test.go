package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directive(policy, name string) string {
	for _, d := range strings.Split(policy, "; ") {
		if strings.HasPrefix(d, name+" ") {
			return d
		}
	}
	return ""
}

func TestGenerateNonceIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		nonce, err := GenerateNonce()
		require.NoError(t, err)
		assert.Len(t, nonce, 22)
		assert.False(t, seen[nonce])
		seen[nonce] = true
	}
}

func TestContentSecurityPolicy(t *testing.T) {
	policy := ContentSecurityPolicy("abc123")

	scripts := directive(policy, "script-src")
	assert.Equal(t, "script-src 'self' https://unpkg.com 'nonce-abc123'", scripts)
	assert.NotContains(t, policy, "unsafe-eval")
	assert.NotContains(t, scripts, "unsafe-inline")
	assert.Equal(t, "connect-src 'self'", directive(policy, "connect-src"))
	assert.Equal(t, "frame-ancestors 'none'", directive(policy, "frame-ancestors"))

	t.Run("without nonce only origins are allowed", func(t *testing.T) {
		assert.Equal(t, "script-src 'self' https://unpkg.com", directive(ContentSecurityPolicy(""), "script-src"))
	})
}

func TestCSPNonceMiddleware(t *testing.T) {
	e := echo.New()

	var seenInHandler string
	handler := CSPNonce()(func(c echo.Context) error {
		seenInHandler = GetNonce(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/invoices/new", nil), rec)
	require.NoError(t, handler(c))

	nonce := c.Get(string(NonceKey)).(string)
	require.NotEmpty(t, nonce)
	assert.Equal(t, nonce, seenInHandler)
	assert.Equal(t, ContentSecurityPolicy(nonce), rec.Header().Get("Content-Security-Policy"))

	// A second page load gets a different nonce
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec2)
	require.NoError(t, handler(c2))
	assert.NotEqual(t, nonce, c2.Get(string(NonceKey)))
}

func TestGetNonceOutsideMiddleware(t *testing.T) {
	assert.Equal(t, "", GetNonce(context.Background()))
	assert.Equal(t, "n", GetNonce(context.WithValue(context.Background(), NonceKey, "n")))
}

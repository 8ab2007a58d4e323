package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	assert.NotNil(t, rl)
	assert.Equal(t, 10, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
	assert.NotNil(t, rl.config.KeyFunc)
	assert.Equal(t, "Too many requests. Please try again later.", rl.config.Message)
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()

	t.Run("WithinLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 2,
			Window:   time.Second,
		})

		handler := rl.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "success")
		})

		// First request
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		// Second request
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		rec = httptest.NewRecorder()
		c = e.NewContext(req, rec)
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ExceededLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   time.Second,
		})

		handler := rl.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "success")
		})

		// First request (OK)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		assert.NoError(t, handler(c))

		// Second request (Rate Limited)
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		rec = httptest.NewRecorder()
		c = e.NewContext(req, rec)
		err := handler(c)

		assert.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, he.Code)
	})

	t.Run("HXRequestExceeded", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   time.Second,
		})

		handler := rl.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "success")
		})

		// First request (OK)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		assert.NoError(t, handler(c))

		// Second request (Rate Limited)
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")
		rec = httptest.NewRecorder()
		c = e.NewContext(req, rec)

		err := handler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Header().Get("HX-Trigger"), "Too many requests")
		assert.Contains(t, rec.Header().Get("HX-Trigger"), "showToast")
	})

	t.Run("APIExceeded", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   time.Second,
		})

		handler := rl.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "success")
		})

		send := func() *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
			rec := httptest.NewRecorder()
			assert.NoError(t, handler(e.NewContext(req, rec)))
			return rec
		}

		assert.Equal(t, http.StatusOK, send().Code)

		rec := send()
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"message":"Too many requests. Please try again later."}`, rec.Body.String())
	})
}

func apiRequest(e *echo.Echo, key string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAPIRateLimiterIgnoresUnverifiedKeys(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(RateLimitConfig{Requests: 2, Window: time.Minute})
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	limited := 0
	for i := 0; i < 20; i++ {
		c, rec := apiRequest(e, fmt.Sprintf("guess-%d", i))
		assert.NoError(t, handler(c))
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Equal(t, 18, limited)
}

func TestAPIKeyRateLimiter(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute, KeyFunc: authenticatedKey})
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	send := func(prefix string) int {
		c, rec := apiRequest(e, prefix+"rest-of-key")
		c.Set(ContextKeyAPIKey, &models.APIKey{Prefix: prefix})
		assert.NoError(t, handler(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("aaaa1111"))
	assert.Equal(t, http.StatusTooManyRequests, send("aaaa1111"))
	// Another authenticated key has its own window
	assert.Equal(t, http.StatusOK, send("bbbb2222"))
}

func TestAdminKeySkipsAPIRateLimit(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{APIKey: "admin-static-key"}
	rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute})
	handler := rl.MiddlewareWithSkipper(IsAdminKeyRequest(cfg))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 100; i++ {
		c, rec := apiRequest(e, "admin-static-key")
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	c, rec := apiRequest(e, "someone-else")
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = apiRequest(e, "someone-else")
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestIsAdminKeyRequestWithoutConfiguredKey(t *testing.T) {
	e := echo.New()
	skip := IsAdminKeyRequest(&config.Config{})

	c, _ := apiRequest(e, "")
	assert.False(t, skip(c))
	c, _ = apiRequest(e, "anything")
	assert.False(t, skip(c))
}

func TestRateLimiterWindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute})
	now := time.Now()

	assert.True(t, rl.allow("k", now))
	assert.False(t, rl.allow("k", now.Add(time.Second)))
	assert.True(t, rl.allow("k", now.Add(2*time.Minute)))
}

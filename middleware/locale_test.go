package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLocale(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Environment: "development"}

	run := func(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		handler := Locale(cfg)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))
		return c, rec
	}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "pt"})
		c, rec := run(req)

		assert.Equal(t, "en", c.Get("locale"))
		var langCookie *http.Cookie
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == LocaleCookieName {
				langCookie = cookie
			}
		}
		if assert.NotNil(t, langCookie) {
			assert.Equal(t, "en", langCookie.Value)
			assert.False(t, langCookie.Secure)
		}
	})

	t.Run("UnsupportedQueryParamFallsBack", func(t *testing.T) {
		c, _ := run(httptest.NewRequest(http.MethodGet, "/?lang=fr", nil))
		assert.Equal(t, "pt", c.Get("locale"))
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
		req.Header.Set("Accept-Language", "pt-BR")
		c, _ := run(req)

		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		c, _ := run(req)

		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		c, _ := run(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "pt", c.Get("locale"))
	})

	t.Run("RequestContext", func(t *testing.T) {
		c, _ := run(httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
		assert.Equal(t, "en", i18n.GetLocale(c.Request().Context()))
	})
}

func TestGetLocale(t *testing.T) {
	e := echo.New()
	t.Run("WithLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("locale", "en")
		assert.Equal(t, "en", GetLocale(c))
	})

	t.Run("WithoutLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "pt", GetLocale(c))
	})
}

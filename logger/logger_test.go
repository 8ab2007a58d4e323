package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Run("Invalid level", func(t *testing.T) {
		err := Setup(LogConfig{Level: "loud", Format: "json"})
		assert.Error(t, err)
	})

	t.Run("JSON output with component", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Setup(LogConfig{Level: "debug", Format: "json", Output: &buf}))
		defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

		l := WithComponent("tests")
		l.Info().Msg("hello")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "tests", entry["component"])
		assert.Equal(t, "hello", entry["message"])
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup(LogConfig{Level: "info", Format: "json", Output: &buf}))
	defer func() { log.Logger = zerolog.Nop() }()

	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"uri":"/ping"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

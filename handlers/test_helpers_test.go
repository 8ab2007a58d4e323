package handlers

import (
	"encoding/json"
	"io"
	"strconv"
	"net/http/httptest"
	"testing"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/db"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/middleware"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/backoffice"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/toast"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(models.All()...)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupStorage(t *testing.T) {
	previous := services.Storage
	services.Storage = services.NewLocalStorage(t.TempDir())
	t.Cleanup(func() { services.Storage = previous })
}

// setupMockAPI swaps the process-wide backoffice client for a mock
func setupMockAPI(t *testing.T) *backoffice.MockAPI {
	m := &backoffice.MockAPI{}
	previous := backoffice.Default
	backoffice.Default = m
	t.Cleanup(func() { backoffice.Default = previous })
	return m
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	req = req.WithContext(i18n.WithLocale(req.Context(), i18n.LangEN))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:      "test",
		ClientFetchLimit: config.DefaultClientFetchLimit,
	})

	return e, c, rec
}

// serve runs h behind the toast middleware, as the router does
func serve(c echo.Context, h echo.HandlerFunc) error {
	return middleware.Toasts()(h)(c)
}

// toastsOf decodes the HX-Trigger header of a response
func toastsOf(t *testing.T, rec *httptest.ResponseRecorder) []toast.Toast {
	header := rec.Header().Get("HX-Trigger")
	if header == "" {
		return nil
	}
	var payload map[string][]toast.Toast
	require.NoError(t, json.Unmarshal([]byte(header), &payload))
	return payload[toast.TriggerEvent]
}

func jsonUint(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

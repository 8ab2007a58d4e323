package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/db"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open("file:mem_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := testDB.AutoMigrate(&models.APIKey{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Set the global DB variable used by middleware
	db.DB = testDB
	return testDB
}

func TestRequireAPIKey(t *testing.T) {
	testDB := setupTestDB(t)
	e := echo.New()
	cfg := &config.Config{APIKey: "admin-static-key"}

	stored, clear, err := services.CreateAPIKey(testDB, "partner")
	require.NoError(t, err)

	call := func(key string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		if key != "" {
			req.Header.Set(APIKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := RequireAPIKey(cfg)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))
		return c, rec
	}

	t.Run("MissingKey", func(t *testing.T) {
		_, rec := call("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "message")
	})

	t.Run("ConfiguredKey", func(t *testing.T) {
		c, rec := call("admin-static-key")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin", GetAPIKey(c).Name)
	})

	t.Run("StoredKey", func(t *testing.T) {
		c, rec := call(clear)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, stored.ID, GetAPIKey(c).ID)
	})

	t.Run("WrongKey", func(t *testing.T) {
		_, rec := call(clear[:models.APIKeyPrefixLength] + "0000000000")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RevokedKey", func(t *testing.T) {
		require.NoError(t, services.RevokeAPIKey(testDB, "partner"))
		_, rec := call(clear)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetAPIKey(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)
	assert.Nil(t, GetAPIKey(c))
}

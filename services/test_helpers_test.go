package services

import (
	"testing"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(models.All()...))
	return testDB
}

func createTestClient(t *testing.T, db *gorm.DB, name string, complete bool) *models.Client {
	t.Helper()

	client := &models.Client{Name: name}
	if complete {
		cpf := uuid.New().String()[:11]
		email := name + "@example.com"
		phone := "11999990000"
		birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
		client.CPF, client.Email, client.Phone, client.BirthDate = &cpf, &email, &phone, &birth
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func createTestInvoice(t *testing.T, db *gorm.DB, clientID uint, fiscalCode string, value string) *models.Invoice {
	t.Helper()

	invoice := &models.Invoice{
		FiscalCode:   fiscalCode,
		ClientID:     clientID,
		InvoiceValue: decimal.RequireFromString(value),
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}

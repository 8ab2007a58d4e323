package services

import (
	"fmt"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedResult reports what SeedDemoData inserted
type SeedResult struct {
	Clients  int
	Invoices int
	Vouchers int
	Skipped  bool
}

type demoClient struct {
	name     string
	cpf      string
	email    string
	phone    string
	birthday string
}

var demoClients = []demoClient{
	{name: "Ana Souza", cpf: "39053344705", email: "ana@example.com", phone: "11987654321", birthday: "1990-04-12"},
	{name: "Bruno Lima", cpf: "52998224725", email: "bruno@example.com", phone: "21998765432", birthday: "1985-09-30"},
	{name: "Carla Mendes", cpf: "11144477735", email: "carla@example.com"},
	{name: "Diego Rocha", phone: "31991234567"},
	{name: "Elisa Prado", cpf: "15350946056", email: "elisa@example.com", phone: "41999887766", birthday: "2000-01-05"},
}

// SeedDemoData fills an empty database with clients, invoices and vouchers for development.
// It does nothing when clients already exist.
func SeedDemoData(db *gorm.DB) (*SeedResult, error) {
	log := logger.WithComponent("seed")

	var count int64
	if err := db.Model(&models.Client{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		log.Info().Int64("clients", count).Msg("Clients already exist, skipping demo seed")
		return &SeedResult{Skipped: true}, nil
	}

	result := &SeedResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		for i, dc := range demoClients {
			client := models.Client{
				Name:  dc.name,
				CPF:   optional(dc.cpf),
				Email: optional(dc.email),
				Phone: optional(dc.phone),
			}
			if dc.birthday != "" {
				birthDate, err := time.Parse("2006-01-02", dc.birthday)
				if err != nil {
					return err
				}
				client.BirthDate = &birthDate
			}
			if err := tx.Create(&client).Error; err != nil {
				return fmt.Errorf("failed to seed client %s: %w", dc.name, err)
			}
			result.Clients++

			// One invoice per client position, each earning one voucher
			for n := 0; n <= i%3; n++ {
				pdv := 1 + n
				store := 100 + i
				invoice := models.Invoice{
					FiscalCode:    fmt.Sprintf("3524%02d%06d", i+1, n+1),
					ClientID:      client.ID,
					InvoiceValue:  decimal.NewFromInt(int64(50 + 25*i + 10*n)).Add(decimal.New(90, -2)),
					HasItem:       n%2 == 0,
					HasCreditcard: i%2 == 0,
					PDV:           &pdv,
					Store:         &store,
				}
				if err := tx.Create(&invoice).Error; err != nil {
					return fmt.Errorf("failed to seed invoice: %w", err)
				}
				result.Invoices++

				voucher := models.Voucher{InvoiceID: invoice.ID, ClientID: client.ID}
				if (i+n)%4 == 0 {
					drawnAt := time.Now().AddDate(0, 0, -i)
					voucher.DrawnAt = &drawnAt
				}
				if err := tx.Create(&voucher).Error; err != nil {
					return fmt.Errorf("failed to seed voucher: %w", err)
				}
				result.Vouchers++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("clients", result.Clients).
		Int("invoices", result.Invoices).
		Int("vouchers", result.Vouchers).
		Msg("Demo data seeded")
	return result, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

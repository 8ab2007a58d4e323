package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/xuri/excelize/v2"
)

var invoiceExportColumns = []string{
	"invoice.list.id",
	"invoice.list.fiscal_code",
	"invoice.list.client",
	"invoice.list.value",
	"invoice.form.has_item",
	"invoice.form.has_creditcard",
	"invoice.form.has_partner_code",
	"invoice.form.pdv",
	"invoice.form.store",
	"invoice.form.num_coupon",
	"invoice.form.cnpj",
	"invoice.form.creditcard",
	"invoice.list.created",
}

// BuildInvoiceWorkbook renders invoices into a single-sheet XLSX workbook
func BuildInvoiceWorkbook(ctx context.Context, invoices []models.Invoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "invoice.sheet.name")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, key := range invoiceExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, i18n.T(ctx, key))
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(invoiceExportColumns), 1)
	f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for i, inv := range invoices {
		row := i + 2
		clientName := ""
		if inv.Client != nil {
			clientName = inv.Client.Name
		}
		value, _ := inv.InvoiceValue.Float64()

		values := []interface{}{
			inv.ID,
			inv.FiscalCode,
			clientName,
			value,
			inv.HasItem,
			inv.HasCreditcard,
			inv.HasPartnerCode,
			intOrEmpty(inv.PDV),
			intOrEmpty(inv.Store),
			intOrEmpty(inv.NumCoupon),
			stringOrEmpty(inv.CNPJ),
			stringOrEmpty(inv.Creditcard),
			inv.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// ExportInvoices builds the workbook and stores it, returning where it can be downloaded
func ExportInvoices(ctx context.Context, storage StorageProvider, invoices []models.Invoice) (*StorageResult, error) {
	buf, err := BuildInvoiceWorkbook(ctx, invoices)
	if err != nil {
		return nil, err
	}

	key := GenerateExportKey("invoices", ".xlsx", time.Now())
	size := int64(buf.Len())
	result, err := storage.UploadReader(ctx, buf, key, XLSXContentType, size)
	if err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}
	return result, nil
}

func intOrEmpty(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

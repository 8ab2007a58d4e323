package forms

import (
	"context"
	"net/url"
	"testing"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enCtx() context.Context {
	return i18n.WithLocale(context.Background(), i18n.LangEN)
}

func TestValidateInvoice_MinimalValid(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode": {"NF-1"},
		"clientId":   {"3"},
	})

	require.Nil(t, errs)
	require.NotNil(t, form)
	assert.Equal(t, InvoicePayload{FiscalCode: "NF-1", ClientID: 3}, form.Payload())
	assert.Nil(t, form.InvoiceValue)
	assert.Nil(t, form.PDV)
	assert.False(t, form.HasItem)
}

func TestValidateInvoice_EmptyForm(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{})

	assert.Nil(t, form)
	assert.Equal(t, "Fiscal code is required", errs.Get(FieldFiscalCode))
	assert.Equal(t, "Select a client", errs.Get(FieldClientID))
}

func TestValidateInvoice_FiscalCodeIsTrimmed(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode": {"   "},
		"clientId":   {"1"},
	})

	assert.Nil(t, form)
	assert.Equal(t, "Fiscal code is required", errs.Get(FieldFiscalCode))
	assert.Empty(t, errs.Get(FieldClientID))
}

func TestValidateInvoice_StripsMarkup(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode": {"  <b>NF-9</b> "},
		"clientId":   {"1"},
	})

	require.Nil(t, errs)
	assert.Equal(t, "NF-9", form.FiscalCode)
}

func TestValidateInvoice_EncodedMarkupStaysEscaped(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode": {"&lt;b&gt;x&lt;/b&gt;"},
		"clientId":   {"1"},
	})

	require.Nil(t, errs)
	assert.NotContains(t, form.FiscalCode, "<")
	assert.NotContains(t, form.FiscalCode, ">")
}

func TestValidateInvoice_KeepsPlainPunctuation(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode": {`NF "A&B" 'x'`},
		"clientId":   {"1"},
	})

	require.Nil(t, errs)
	assert.Equal(t, `NF "A&B" 'x'`, form.FiscalCode)
}

func TestValidateInvoice_RejectsInvalidUTF8(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode": {"\xff\xfe"},
		"clientId":   {"1"},
	})

	assert.Nil(t, form)
	assert.Equal(t, "Contains invalid characters", errs.Get(FieldFiscalCode))

	form, errs = ValidateInvoice(enCtx(), url.Values{
		"fiscalCode": {"NF-1"},
		"clientId":   {"1"},
		"cnpj":       {"12\xff"},
	})

	assert.Nil(t, form)
	assert.Equal(t, "Contains invalid characters", errs.Get(FieldCNPJ))
}

func TestValidateInvoice_ClientIDRules(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
	}{
		{"zero", "0"},
		{"negative", "-4"},
		{"not a number", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, errs := ValidateInvoice(enCtx(), url.Values{
				"fiscalCode": {"NF-1"},
				"clientId":   {tt.clientID},
			})
			assert.Nil(t, form)
			assert.Equal(t, "Select a client", errs.Get(FieldClientID))
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateInvoice_OptionalFields(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode":     {"NF-1"},
		"clientId":       {"2"},
		"invoiceValue":   {"12,50"},
		"pdv":            {"4"},
		"store":          {"0"},
		"numCoupon":      {""},
		"hasItem":        {"on"},
		"hasCreditcard":  {"true"},
		"hasPartnerCode": {"off"},
		"cnpj":           {" 12.345.678/0001-90 "},
		"creditcard":     {""},
	})

	require.Nil(t, errs)
	require.NotNil(t, form.InvoiceValue)
	assert.Equal(t, "12.5", form.InvoiceValue.String())
	require.NotNil(t, form.PDV)
	assert.Equal(t, 4, *form.PDV)
	require.NotNil(t, form.Store)
	assert.Equal(t, 0, *form.Store)
	assert.Nil(t, form.NumCoupon)
	assert.True(t, form.HasItem)
	assert.True(t, form.HasCreditcard)
	assert.False(t, form.HasPartnerCode)
	require.NotNil(t, form.CNPJ)
	assert.Equal(t, "12.345.678/0001-90", *form.CNPJ)
	assert.Nil(t, form.Creditcard)

	// Optional fields never reach the API
	assert.Equal(t, InvoicePayload{FiscalCode: "NF-1", ClientID: 2}, form.Payload())
}

func TestValidateInvoice_OptionalFieldErrors(t *testing.T) {
	form, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode":   {"NF-1"},
		"clientId":     {"2"},
		"invoiceValue": {"lots"},
		"pdv":          {"1.5"},
		"store":        {"-1"},
	})

	assert.Nil(t, form)
	assert.Equal(t, "Must be a number", errs.Get(FieldInvoiceValue))
	assert.Equal(t, "Must be a whole number", errs.Get(FieldPDV))
	assert.Equal(t, "Must be zero or greater", errs.Get(FieldStore))
}

func TestValidateInvoice_NegativeValue(t *testing.T) {
	_, errs := ValidateInvoice(enCtx(), url.Values{
		"fiscalCode":   {"NF-1"},
		"clientId":     {"2"},
		"invoiceValue": {"-0.01"},
	})

	assert.Equal(t, "Must be zero or greater", errs.Get(FieldInvoiceValue))
}

func TestValidateInvoice_PortugueseMessages(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), i18n.LangPT)
	_, errs := ValidateInvoice(ctx, url.Values{})

	assert.NotEqual(t, "Fiscal code is required", errs.Get(FieldFiscalCode))
	assert.NotEqual(t, "invoice.errors.fiscal_code_required", errs.Get(FieldFiscalCode))
}

func TestValidatePayload(t *testing.T) {
	p := &InvoicePayload{FiscalCode: " NF-7 ", ClientID: 5}
	errs := ValidatePayload(enCtx(), p)
	assert.False(t, errs.Any())
	assert.Equal(t, "NF-7", p.FiscalCode)

	errs = ValidatePayload(enCtx(), &InvoicePayload{})
	assert.Equal(t, "Fiscal code is required", errs.Get(FieldFiscalCode))
	assert.Equal(t, "Select a client", errs.Get(FieldClientID))
}

func TestProjectClients(t *testing.T) {
	clients := []models.Client{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Bruno"},
	}

	options := ProjectClients(clients)

	assert.Equal(t, []ClientOption{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bruno"}}, options)
	assert.Empty(t, ProjectClients(nil))
}

func TestFieldErrors_FirstMessageWins(t *testing.T) {
	fe := FieldErrors{}
	fe.add("x", "first")
	fe.add("x", "second")

	assert.Equal(t, "first", fe.Get("x"))
	assert.True(t, fe.Any())
	assert.Empty(t, fe.Get("y"))
}

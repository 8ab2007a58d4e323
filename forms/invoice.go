package forms

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/shopspring/decimal"
)

// Invoice form field names, shared by the templates and the error map
const (
	FieldFiscalCode     = "fiscalCode"
	FieldClientID       = "clientId"
	FieldInvoiceValue   = "invoiceValue"
	FieldHasItem        = "hasItem"
	FieldHasCreditcard  = "hasCreditcard"
	FieldHasPartnerCode = "hasPartnerCode"
	FieldPDV            = "pdv"
	FieldStore          = "store"
	FieldNumCoupon      = "numCoupon"
	FieldCNPJ           = "cnpj"
	FieldCreditcard     = "creditcard"
)

// InvoiceFields lists every field that can carry an error, in display order
var InvoiceFields = []string{
	FieldFiscalCode, FieldClientID, FieldInvoiceValue, FieldPDV, FieldStore, FieldNumCoupon, FieldCNPJ, FieldCreditcard,
}

// InvoiceForm is a normalized invoice candidate. Only FiscalCode and ClientID are sent on
// creation; the other fields exist for editing and are read-only while creating.
type InvoiceForm struct {
	FiscalCode     string           `form:"fiscalCode" validate:"required,utf8"`
	ClientID       int              `form:"clientId" validate:"gte=1"`
	InvoiceValue   *decimal.Decimal `form:"invoiceValue" validate:"omitempty,gte=0"`
	HasItem        bool             `form:"hasItem"`
	HasCreditcard  bool             `form:"hasCreditcard"`
	HasPartnerCode bool             `form:"hasPartnerCode"`
	PDV            *int             `form:"pdv" validate:"omitempty,gte=0"`
	Store          *int             `form:"store" validate:"omitempty,gte=0"`
	NumCoupon      *int             `form:"numCoupon" validate:"omitempty,gte=0"`
	CNPJ           *string          `form:"cnpj" validate:"omitempty,utf8"`
	Creditcard     *string          `form:"creditcard" validate:"omitempty,utf8"`
}

// Payload extracts the fields sent to the API when creating an invoice
func (f *InvoiceForm) Payload() InvoicePayload {
	return InvoicePayload{
		FiscalCode: f.FiscalCode,
		ClientID:   f.ClientID,
	}
}

// InvoicePayload is the body of POST /api/invoices
type InvoicePayload struct {
	FiscalCode string `json:"fiscalCode" validate:"required,utf8"`
	ClientID   int    `json:"clientId" validate:"gte=1"`
}

// Normalize trims the fiscal code and strips markup
func (p *InvoicePayload) Normalize() {
	p.FiscalCode = cleanText(p.FiscalCode)
}

// ValidateInvoice coerces submitted values into an InvoiceForm and checks it.
// Invalid input is a normal outcome: it returns the field errors and a nil form.
func ValidateInvoice(ctx context.Context, raw url.Values) (*InvoiceForm, FieldErrors) {
	errs := FieldErrors{}
	form := &InvoiceForm{
		FiscalCode:     cleanText(raw.Get(FieldFiscalCode)),
		HasItem:        parseCheckbox(raw.Get(FieldHasItem)),
		HasCreditcard:  parseCheckbox(raw.Get(FieldHasCreditcard)),
		HasPartnerCode: parseCheckbox(raw.Get(FieldHasPartnerCode)),
		CNPJ:           optionalText(raw.Get(FieldCNPJ)),
		Creditcard:     optionalText(raw.Get(FieldCreditcard)),
	}

	// An empty selection coerces to 0, which the gte=1 rule rejects
	clientID := strings.TrimSpace(raw.Get(FieldClientID))
	if clientID != "" {
		n, err := strconv.Atoi(clientID)
		if err != nil {
			errs.add(FieldClientID, i18n.T(ctx, "invoice.errors.client_required"))
		}
		form.ClientID = n
	}

	if v := strings.TrimSpace(raw.Get(FieldInvoiceValue)); v != "" {
		d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
		if err != nil {
			errs.add(FieldInvoiceValue, i18n.T(ctx, "invoice.errors.not_a_number"))
		} else {
			form.InvoiceValue = &d
		}
	}

	form.PDV = parseOptionalInt(ctx, raw, FieldPDV, errs)
	form.Store = parseOptionalInt(ctx, raw, FieldStore, errs)
	form.NumCoupon = parseOptionalInt(ctx, raw, FieldNumCoupon, errs)

	validateStruct(ctx, form, errs)

	if errs.Any() {
		return nil, errs
	}
	return form, nil
}

// ValidatePayload checks an API creation payload with the same rules as the form
func ValidatePayload(ctx context.Context, p *InvoicePayload) FieldErrors {
	p.Normalize()
	errs := FieldErrors{}
	validateStruct(ctx, p, errs)
	return errs
}

func parseOptionalInt(ctx context.Context, raw url.Values, field string, errs FieldErrors) *int {
	v := strings.TrimSpace(raw.Get(field))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		errs.add(field, i18n.T(ctx, "invoice.errors.not_an_integer"))
		return nil
	}
	return &n
}

func parseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// ClientOption is the {id, name} projection offered by the client select
type ClientOption struct {
	ID   uint
	Name string
}

// ProjectClients derives the select options from the fetched client list. It is recomputed
// on every render instead of being kept as a second copy of the list.
func ProjectClients(clients []models.Client) []ClientOption {
	options := make([]ClientOption, 0, len(clients))
	for _, c := range clients {
		options = append(options, ClientOption{ID: c.ID, Name: c.Name})
	}
	return options
}

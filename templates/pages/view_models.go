package pages

import (
	"net/url"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/forms"
)

// InvoiceCreateState is the phase of the invoice creation page
type InvoiceCreateState int

const (
	StateLoadingReference InvoiceCreateState = iota
	StateReferenceError
	StateReady
	StateSubmitting
	StateSuccess
	StateSubmitError
)

func (s InvoiceCreateState) String() string {
	switch s {
	case StateLoadingReference:
		return "loading_reference"
	case StateReferenceError:
		return "reference_error"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateSubmitError:
		return "submit_error"
	default:
		return "unknown"
	}
}

// InvoiceCreateView holds the data for the invoice form
type InvoiceCreateView struct {
	State     InvoiceCreateState
	CSRFToken string
	Clients   []forms.ClientOption
	Values    url.Values
	Errors    forms.FieldErrors
}

// IsFormDisabled gates the submit and back controls while the client list is loading
// or a submission is in flight.
func (v InvoiceCreateView) IsFormDisabled() bool {
	return v.State == StateLoadingReference || v.State == StateSubmitting
}

// ShowsForm reports whether the form is rendered at all
func (v InvoiceCreateView) ShowsForm() bool {
	return v.State != StateReferenceError
}

func (v InvoiceCreateView) value(field string) string {
	if v.Values == nil {
		return ""
	}
	return v.Values.Get(field)
}

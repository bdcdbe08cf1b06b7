package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/widepay/internal/clock"
	"github.com/smallbiznis/widepay/internal/widepay"
)

const (
	maxReferenceLength = 100
	dueDateLayout      = "2006-01-02"
)

// FormatAmount renders a monetary value in the fixed-point two-decimal shape
// the protocol requires. Rounding is half-up: 19.999 becomes "20.00".
func FormatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

// Builder assembles processor charge payloads from billing-domain inputs.
// The clock is injected so boleto due-date defaults stay deterministic in
// tests.
type Builder struct {
	clock           clock.Clock
	callbackBaseURL string
}

func NewBuilder(clk clock.Clock, callbackBaseURL string) *Builder {
	return &Builder{
		clock:           clk,
		callbackBaseURL: strings.TrimRight(strings.TrimSpace(callbackBaseURL), "/"),
	}
}

// Build validates a charge request and renders the wire payload. All field
// checks are reported together so the caller can surface them per field.
func (b *Builder) Build(req ChargeRequest) (widepay.ChargeParams, error) {
	var errs ValidationErrors

	if strings.TrimSpace(req.Payer.Name) == "" {
		errs = append(errs, ValidationError{Field: "payer_name", Code: "required", Message: "payer name is required"})
	}
	if strings.TrimSpace(req.Payer.Document) == "" {
		errs = append(errs, ValidationError{Field: "document", Code: "required", Message: "payer document is required"})
	}
	if req.Payer.Type != PersonTypeNatural && req.Payer.Type != PersonTypeLegal {
		errs = append(errs, ValidationError{Field: "person_type", Code: "invalid", Message: "person type must be natural or legal"})
	}
	if req.Form != PaymentFormCard && req.Form != PaymentFormBoleto {
		errs = append(errs, ValidationError{Field: "form", Code: "invalid", Message: "payment form must be card or boleto"})
	}
	if len(req.Reference) > maxReferenceLength {
		errs = append(errs, ValidationError{Field: "reference", Code: "too_long", Message: "reference must be at most 100 characters"})
	}
	if len(req.Invoices) == 0 && !req.Amount.IsPositive() {
		errs = append(errs, ValidationError{Field: "amount", Code: "invalid", Message: "amount must be positive"})
	}
	if len(errs) > 0 {
		return widepay.ChargeParams{}, errs
	}

	params := widepay.ChargeParams{
		Payer:           strings.TrimSpace(req.Payer.Name),
		Email:           strings.TrimSpace(req.Payer.Email),
		Phone:           strings.TrimSpace(req.Payer.Phone),
		Items:           buildItems(req),
		Reference:       req.Reference,
		NotificationURL: b.notificationURL(req.ClientID),
		RedirectURL:     req.RedirectURL,
		Send:            req.Send,
		Message:         req.Message,
	}

	switch req.Payer.Type {
	case PersonTypeLegal:
		params.PersonType = widepay.PersonLegal
		params.CNPJ = strings.TrimSpace(req.Payer.Document)
	default:
		params.PersonType = widepay.PersonNatural
		params.CPF = strings.TrimSpace(req.Payer.Document)
	}

	switch req.Form {
	case PaymentFormBoleto:
		params.Form = widepay.FormBoleto
		due := b.clock.Now().Add(24 * time.Hour)
		if req.DueDate != nil {
			due = *req.DueDate
		}
		params.DueDate = due.Format(dueDateLayout)
	default:
		params.Form = widepay.FormCard
	}

	if req.Address != nil {
		params.Address = &widepay.Address{
			Street:       req.Address.Street,
			Number:       req.Address.Number,
			Complement:   req.Address.Complement,
			Neighborhood: req.Address.Neighborhood,
			ZipCode:      req.Address.ZipCode,
			City:         req.Address.City,
			State:        req.Address.State,
		}
	}

	return params, nil
}

// buildItems produces one line item per invoice, or a single synthetic item
// covering the whole amount when no breakdown is supplied.
func buildItems(req ChargeRequest) []widepay.LineItem {
	if len(req.Invoices) == 0 {
		return []widepay.LineItem{{
			Description: "Pagamento",
			Value:       FormatAmount(req.Amount),
		}}
	}
	items := make([]widepay.LineItem, 0, len(req.Invoices))
	for _, invoice := range req.Invoices {
		items = append(items, widepay.LineItem{
			Description: invoice.ID,
			Value:       FormatAmount(invoice.Amount),
		})
	}
	return items
}

// notificationURL builds the deterministic callback the processor redirects
// to, parameterized by client so the webhook can be correlated back.
func (b *Builder) notificationURL(clientID string) string {
	return b.callbackBaseURL + "/webhooks/widepay?client_id=" + url.QueryEscape(clientID)
}

// ValidateSettings checks the wallet credentials required by every call.
func ValidateSettings(s Settings) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(s.WalletID) == "" {
		errs = append(errs, ValidationError{Field: "wallet_id", Code: "required", Message: "wallet id is required"})
	}
	if strings.TrimSpace(s.WalletToken) == "" {
		errs = append(errs, ValidationError{Field: "wallet_token", Code: "required", Message: "wallet token is required"})
	}
	return errs
}

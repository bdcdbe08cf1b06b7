package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ChargeStatus is the billing platform's canonical transaction status. Every
// processor status maps into exactly one of these.
type ChargeStatus string

const (
	StatusApproved ChargeStatus = "approved"
	StatusPending  ChargeStatus = "pending"
	StatusDeclined ChargeStatus = "declined"
	StatusVoid     ChargeStatus = "void"
	StatusRefunded ChargeStatus = "refunded"
	StatusError    ChargeStatus = "error"
)

// PersonType classifies the payer. The caller supplies the classification;
// the gateway only selects the matching document field.
type PersonType string

const (
	PersonTypeNatural PersonType = "natural"
	PersonTypeLegal   PersonType = "legal"
)

// PaymentForm selects the payment instrument.
type PaymentForm string

const (
	PaymentFormCard   PaymentForm = "card"
	PaymentFormBoleto PaymentForm = "boleto"
)

// Payer identifies who is being charged. Document is a CPF for natural
// persons and a CNPJ for legal entities.
type Payer struct {
	Name     string
	Type     PersonType
	Document string
	Email    string
	Phone    string
}

// Address is the payer's billing address, optional on a charge.
type Address struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	ZipCode      string
	City         string
	State        string
}

// InvoiceAmount is one invoice being covered by a charge.
type InvoiceAmount struct {
	ID     string
	Amount decimal.Decimal
}

// ChargeRequest carries the billing-domain inputs for one charge.
type ChargeRequest struct {
	ClientID string
	Payer    Payer
	Address  *Address

	// Amount is the total to charge. When Invoices is non-empty the line
	// items are built from it instead and Amount is ignored.
	Amount   decimal.Decimal
	Invoices []InvoiceAmount

	Form PaymentForm

	// DueDate applies to boleto charges only; when nil, one day from the
	// time of construction is used.
	DueDate *time.Time

	Reference   string
	RedirectURL string

	// Send asks the processor to deliver the charge itself, e.g. by email.
	Send    string
	Message string
}

// InvoiceAllocation is one processor line item mapped back to an invoice.
// Missing fields pass through empty; the processor is authoritative.
type InvoiceAllocation struct {
	InvoiceID string `json:"invoice_id"`
	Amount    string `json:"amount"`
}

// ReconciledTransaction is the normalized outcome of one charge lookup.
type ReconciledTransaction struct {
	Status          ChargeStatus
	ProcessorStatus string
	TransactionID   string
	Amount          decimal.Decimal
	Invoices        []InvoiceAllocation

	// Messages holds the processor's error messages when Status is error.
	Messages []string
}

// ChargeResult is returned from charge creation.
type ChargeResult struct {
	TransactionID string
	RedirectURL   string
	Status        ChargeStatus
}

// Settings are the wallet credentials required to talk to the processor.
type Settings struct {
	WalletID    string
	WalletToken string
}

// GatewayLog stores one raw request/response pair for support diagnosis.
type GatewayLog struct {
	ID        snowflake.ID   `gorm:"primaryKey"`
	Route     string         `gorm:"type:text;not null"`
	Request   datatypes.JSON `gorm:"not null"`
	Response  datatypes.JSON
	Status    string    `gorm:"type:text"`
	Success   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (GatewayLog) TableName() string { return "gateway_logs" }

// TransactionRecord stores a reconciled transaction. DedupeKey makes rows
// idempotent per observed charge state, so duplicate webhook deliveries do
// not duplicate ledger-affecting records.
type TransactionRecord struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	ClientID        string       `gorm:"type:text;index"`
	NotificationID  string       `gorm:"type:text;index"`
	TransactionID   string       `gorm:"type:text;index"`
	DedupeKey       string       `gorm:"type:text;not null;uniqueIndex"`
	Status          string       `gorm:"type:text;not null"`
	ProcessorStatus string       `gorm:"type:text"`
	Amount          string       `gorm:"type:text;not null"`
	Currency        string       `gorm:"type:text;not null"`
	Allocations     datatypes.JSON
	ReceivedAt      time.Time `gorm:"not null"`
}

func (TransactionRecord) TableName() string { return "gateway_transactions" }

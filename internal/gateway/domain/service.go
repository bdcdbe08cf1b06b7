package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Service is the gateway surface consumed by the billing platform.
type Service interface {
	// CreateCharge builds and submits a charge, returning the processor's
	// payment link on success.
	CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)

	// HandleNotification re-fetches the authoritative charge state for a
	// webhook notification id and reconciles it.
	HandleNotification(ctx context.Context, notificationID string) (*ReconciledTransaction, error)

	// GetTransaction reads a stored reconciled transaction.
	GetTransaction(ctx context.Context, id snowflake.ID) (*TransactionRecord, error)

	// ValidateSettings checks wallet credentials, reporting field-level
	// messages.
	ValidateSettings(s Settings) ValidationErrors
}

package events

// Gateway event types recorded for every reconciled charge state.
const (
	EventChargeCreated   = "charge_created"
	EventPaymentSettled  = "payment_settled"
	EventPaymentPending  = "payment_pending"
	EventPaymentDeclined = "payment_declined"
	EventPaymentVoided   = "payment_voided"
	EventPaymentRefunded = "payment_refunded"
	EventPaymentError    = "payment_error"
)

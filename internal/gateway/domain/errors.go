package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidNotification = errors.New("invalid_notification")
	ErrTransactionNotFound = errors.New("transaction_not_found")
	ErrMissingCredentials  = errors.New("missing_credentials")
)

// ValidationError reports a single failed field check, so settings and
// payment forms can re-render highlighting the offending input.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors aggregates field checks into one error value.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// GatewayError carries processor-reported error messages verbatim. It covers
// both application errors and the synthetic transport failure, which share
// one surface downstream.
type GatewayError struct {
	Status   string
	Messages []string
}

func (e *GatewayError) Error() string {
	return "widepay: " + strings.Join(e.Messages, "; ")
}

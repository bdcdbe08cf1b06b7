package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/widepay/internal/gateway/domain"
)

type transactionResponse struct {
	ID              string                     `json:"id"`
	ClientID        string                     `json:"client_id,omitempty"`
	NotificationID  string                     `json:"notification_id,omitempty"`
	TransactionID   string                     `json:"transaction_id,omitempty"`
	Status          string                     `json:"status"`
	ProcessorStatus string                     `json:"processor_status,omitempty"`
	Amount          string                     `json:"amount"`
	Currency        string                     `json:"currency"`
	Invoices        []domain.InvoiceAllocation `json:"invoices,omitempty"`
	ReceivedAt      string                     `json:"received_at"`
}

// @Summary      Get Transaction
// @Description  Get a reconciled transaction by ID
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  transactionResponse
// @Router       /api/transactions/{id} [get]
func (s *Server) GetTransaction(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid transaction id"))
		return
	}

	record, err := s.gatewaySvc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var invoices []domain.InvoiceAllocation
	if len(record.Allocations) > 0 {
		_ = json.Unmarshal(record.Allocations, &invoices)
	}

	c.JSON(http.StatusOK, gin.H{"data": transactionResponse{
		ID:              record.ID.String(),
		ClientID:        record.ClientID,
		NotificationID:  record.NotificationID,
		TransactionID:   record.TransactionID,
		Status:          record.Status,
		ProcessorStatus: record.ProcessorStatus,
		Amount:          record.Amount,
		Currency:        record.Currency,
		Invoices:        invoices,
		ReceivedAt:      record.ReceivedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}})
}

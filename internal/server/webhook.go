package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/widepay/internal/gateway/domain"
)

type webhookResponse struct {
	Status          string                     `json:"status"`
	ProcessorStatus string                     `json:"processor_status,omitempty"`
	TransactionID   string                     `json:"transaction_id,omitempty"`
	Amount          string                     `json:"amount"`
	Invoices        []domain.InvoiceAllocation `json:"invoices,omitempty"`
}

// @Summary      WidePay Webhook
// @Description  Handle a WidePay charge notification and reconcile its state
// @Tags         webhooks
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        notificacao  formData  string  true  "Notification ID"
// @Success      200  {object}  webhookResponse
// @Router       /webhooks/widepay [post]
func (s *Server) HandleWebhook(c *gin.Context) {
	// WidePay posts the notification id as a form field. Fall back to the
	// query string so manual re-delivery is possible.
	id := strings.TrimSpace(c.PostForm("notificacao"))
	if id == "" {
		id = strings.TrimSpace(c.Query("notificacao"))
	}

	tx, err := s.gatewaySvc.HandleNotification(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": webhookResponse{
		Status:          string(tx.Status),
		ProcessorStatus: tx.ProcessorStatus,
		TransactionID:   tx.TransactionID,
		Amount:          domain.FormatAmount(tx.Amount),
		Invoices:        tx.Invoices,
	}})
}

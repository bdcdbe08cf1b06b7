package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/widepay/internal/gateway/domain"
)

type paymentAddress struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	ZipCode      string `json:"zip_code"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type paymentInvoice struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
}

type createPaymentRequest struct {
	ClientID string `json:"client_id"`

	PayerName  string `json:"payer_name"`
	PersonType string `json:"person_type"`
	Document   string `json:"document"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	Address *paymentAddress `json:"address"`

	Amount   string           `json:"amount"`
	Invoices []paymentInvoice `json:"invoices"`

	Form    string `json:"form"`
	DueDate string `json:"due_date"`

	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
	Send        string `json:"send"`
	Message     string `json:"message"`
}

type createPaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	Status        string `json:"status"`
}

// @Summary      Create Payment
// @Description  Submit a charge to WidePay and return the payment link
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body createPaymentRequest true "Create Payment Request"
// @Success      200  {object}  createPaymentResponse
// @Router       /api/payments [post]
func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	chargeReq, err := buildChargeRequest(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.gatewaySvc.CreateCharge(c.Request.Context(), chargeReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": createPaymentResponse{
		TransactionID: resp.TransactionID,
		RedirectURL:   resp.RedirectURL,
		Status:        string(resp.Status),
	}})
}

func buildChargeRequest(req createPaymentRequest) (domain.ChargeRequest, error) {
	chargeReq := domain.ChargeRequest{
		ClientID: strings.TrimSpace(req.ClientID),
		Payer: domain.Payer{
			Name:     strings.TrimSpace(req.PayerName),
			Type:     domain.PersonType(strings.TrimSpace(req.PersonType)),
			Document: strings.TrimSpace(req.Document),
			Email:    strings.TrimSpace(req.Email),
			Phone:    strings.TrimSpace(req.Phone),
		},
		Form:        domain.PaymentForm(strings.TrimSpace(req.Form)),
		Reference:   strings.TrimSpace(req.Reference),
		RedirectURL: strings.TrimSpace(req.RedirectURL),
		Send:        strings.TrimSpace(req.Send),
		Message:     strings.TrimSpace(req.Message),
	}

	if req.Address != nil {
		chargeReq.Address = &domain.Address{
			Street:       req.Address.Street,
			Number:       req.Address.Number,
			Complement:   req.Address.Complement,
			Neighborhood: req.Address.Neighborhood,
			ZipCode:      req.Address.ZipCode,
			City:         req.Address.City,
			State:        req.Address.State,
		}
	}

	if amount := strings.TrimSpace(req.Amount); amount != "" {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return chargeReq, newValidationError("amount", "invalid_amount", "invalid amount")
		}
		chargeReq.Amount = value
	}

	for _, invoice := range req.Invoices {
		value, err := decimal.NewFromString(strings.TrimSpace(invoice.Amount))
		if err != nil {
			return chargeReq, newValidationError("invoices", "invalid_amount", "invalid invoice amount")
		}
		chargeReq.Invoices = append(chargeReq.Invoices, domain.InvoiceAmount{
			ID:     strings.TrimSpace(invoice.ID),
			Amount: value,
		})
	}

	if due := strings.TrimSpace(req.DueDate); due != "" {
		parsed, err := time.Parse("2006-01-02", due)
		if err != nil {
			return chargeReq, newValidationError("due_date", "invalid_due_date", "invalid due date")
		}
		chargeReq.DueDate = &parsed
	}

	return chargeReq, nil
}

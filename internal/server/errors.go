package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/widepay/internal/gateway/domain"
)

var ErrNotFound = errors.New("not_found")

// HTTPError is the wire shape for every non-2xx response.
type HTTPError struct {
	Status  int                      `json:"-"`
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Fields  []domain.ValidationError `json:"fields,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func invalidRequestError() error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "invalid request body",
	}
}

func newValidationError(field, code, message string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Fields: []domain.ValidationError{
			{Field: field, Code: code, Message: message},
		},
	}
}

// AbortWithError renders a domain error as an HTTP response.
func AbortWithError(c *gin.Context, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		c.AbortWithStatusJSON(httpErr.Status, gin.H{"error": httpErr})
		return
	}

	var fieldErrs domain.ValidationErrors
	if errors.As(err, &fieldErrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": &HTTPError{
			Code:    "validation_failed",
			Message: "validation failed",
			Fields:  fieldErrs,
		}})
		return
	}

	var gatewayErr *domain.GatewayError
	if errors.As(err, &gatewayErr) {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": &HTTPError{
			Code:    "gateway_error",
			Message: gatewayErr.Error(),
		}})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidNotification):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": &HTTPError{
			Code:    "invalid_notification",
			Message: "missing notification id",
		}})
	case errors.Is(err, domain.ErrMissingCredentials):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": &HTTPError{
			Code:    "missing_credentials",
			Message: "wallet credentials are not configured",
		}})
	case errors.Is(err, domain.ErrTransactionNotFound), errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": &HTTPError{
			Code:    "not_found",
			Message: "resource not found",
		}})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": &HTTPError{
			Code:    "internal_error",
			Message: "internal error",
		}})
	}
}

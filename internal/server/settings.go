package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/widepay/internal/gateway/domain"
)

type validateSettingsRequest struct {
	WalletID    string `json:"wallet_id"`
	WalletToken string `json:"wallet_token"`
}

// @Summary      Validate Settings
// @Description  Check wallet credentials for completeness
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body validateSettingsRequest true "Validate Settings Request"
// @Success      200  {object}  map[string]string
// @Router       /api/settings/validate [post]
func (s *Server) ValidateSettings(c *gin.Context) {
	var req validateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	errs := s.gatewaySvc.ValidateSettings(domain.Settings{
		WalletID:    strings.TrimSpace(req.WalletID),
		WalletToken: strings.TrimSpace(req.WalletToken),
	})
	if len(errs) > 0 {
		AbortWithError(c, errs)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
)

type tokenHandler struct {
	tokenService portssvc.TokenSvcFacade
}

func registerTokenRoutes(rg *gin.RouterGroup, ts portssvc.TokenSvcFacade) {
	h := &tokenHandler{tokenService: ts}
	rg.POST("/token/refresh", h.refresh)
}

// refresh godoc
// @Summary Refresh tokens
// @Description Exchanges an expired access token and its refresh token for a new pair
// @Tags auth
// @Accept json
// @Produce json
// @Param tokens body dto.TokenRequest true "Token pair"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorDetails "Invalid client request"
// @Router /token/refresh [post]
func (h *tokenHandler) refresh(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	tokens, err := h.tokenService.RefreshTokens(c.Request.Context(), req.AccessToken, req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

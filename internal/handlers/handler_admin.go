package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
)

// adminHandler manages users on behalf of administrators.
type adminHandler struct {
	userService portssvc.UserSvcFacade
}

func registerAdminRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade) {
	h := &adminHandler{userService: us}

	admins := rg.Group("/admins", middleware.RequireRoles(domain.RoleAdministrator))
	{
		admins.GET("/getuser/:id", h.getUser)
		admins.POST("/updaterole/:id", h.updateRoles)
	}
}

// getUser godoc
// @Summary Get any user
// @Tags admins
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorDetails
// @Failure 403 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /admins/getuser/{id} [get]
func (h *adminHandler) getUser(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateRoles godoc
// @Summary Replace a user's roles
// @Tags admins
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param roles body dto.UpdateRolesRequest true "New roles"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorDetails
// @Failure 403 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /admins/updaterole/{id} [post]
func (h *adminHandler) updateRoles(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUserRoles(c.Request.Context(), userID, req.Roles)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User roles updated",
		slog.Int64("target_user_id", userID),
		slog.Any("roles", req.Roles))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

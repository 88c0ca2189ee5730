package middleware

import (
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey and rolesKey store the authenticated subject in the request context.
const (
	userIDKey = contextKey("userID")
	rolesKey  = contextKey("roles")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(int64)
	return userID, ok
}

// GetRolesFromContext retrieves the roles of the authenticated user.
func GetRolesFromContext(c *gin.Context) []domain.Role {
	roles, _ := c.Request.Context().Value(rolesKey).([]domain.Role)
	return roles
}

package middleware

import (
	"net/http"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireRoles lets the request through when the authenticated user holds any of roles.
// It must run after AuthMiddleware.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		granted := GetRolesFromContext(c)
		for _, want := range roles {
			for _, have := range granted {
				if have == want {
					c.Next()
					return
				}
			}
		}
		GetLoggerFromCtx(c.Request.Context()).Warn("Forbidden: missing role", "required", roles)
		abortWithError(c, http.StatusForbidden, "You are not allowed to perform this action")
	}
}

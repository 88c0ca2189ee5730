package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and stores the user ID and roles from the claims in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			abortWithError(c, http.StatusUnauthorized, msg)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			logger.Error("User ID (subject) missing or malformed in valid token", "subject", claims.Subject)
			abortWithError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		roles := make([]domain.Role, len(claims.Roles))
		for i, r := range claims.Roles {
			roles[i] = domain.Role(r)
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, rolesKey, roles)

		// Store the *enriched* logger back into the standard context
		enrichedLogger := logger.With(slog.Int64("user_id", userID))
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next() // Proceed to the next handler
	}
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.NewErrorDetails(status, msg))
}

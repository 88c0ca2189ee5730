package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit creates a Gin middleware that limits requests per client IP.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		limit, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			abortWithError(c, http.StatusInternalServerError, "Internal server error during rate limit check")
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(limit.Remaining, 10))

		if limit.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", limit.Limit))
			abortWithError(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		c.Next()
	}
}

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case apperrors.ViolationOf(err) != apperrors.ViolationNone:
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidRefreshToken):
		return http.StatusBadRequest
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// writeError renders err as an ErrorDetails body. Unexpected errors are logged and their text is
// not sent to the client.
func writeError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(status, dto.NewErrorDetails(status, unexpectedErrorMessage))
		return
	}

	message := apperrors.Message(err)
	if errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		message = apperrors.ErrInvalidRefreshToken.Error()
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, dto.NewErrorDetails(status, message))
}

// writeBindError reports every failed binding rule, or the decoder error for malformed input.
func writeBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, dto.NewErrorDetails(http.StatusBadRequest, "Invalid request format: "+err.Error()))
		return
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, validationMessage(fe))
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorDetails(http.StatusBadRequest, messages...))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "username11":
		return "UserName must be exactly 11 digits"
	case "strongpassword":
		return fmt.Sprintf("Password must be at least %d characters and contain letters and digits", dto.MinPasswordLength)
	case "billdate":
		return "LastPayTime must be later than two months ago"
	case "email":
		return "Email must be a valid email address"
	}
	return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
}

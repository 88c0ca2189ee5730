package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned when a username/password pair does not match.
var ErrInvalidCredentials = errors.New("User login validation has been failed. Incorrect username or password")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInvalidRefreshToken is returned for a refresh request whose tokens do not match the stored ones.
var ErrInvalidRefreshToken = errors.New("Invalid client request. The Token has some invalid values")

// ErrSessionDisposed is returned when a unit of work is used after Dispose.
var ErrSessionDisposed = errors.New("unit of work has been disposed")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// It is used for infrastructure failures where the caller only needs a code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// RoleNotFound reports a role name that has no row in the roles table.
func RoleNotFound(role string) error {
	return fmt.Errorf("%w: Role with name: %s doesn't exist in the database", ErrNotFound, role)
}

// UserNotFound reports a missing user id.
func UserNotFound(userID int64) error {
	return fmt.Errorf("%w: User with id: %d doesn't exist in the database", ErrNotFound, userID)
}

// Message returns the human readable part of err, stripping the sentinel prefix added by
// wrappers such as RoleNotFound.
func Message(err error) string {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Message
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	for _, sentinel := range []error{ErrNotFound, ErrValidation, ErrDuplicate, ErrUnauthorized, ErrForbidden} {
		prefix := sentinel.Error() + ": "
		if msg := err.Error(); errors.Is(err, sentinel) && len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return err.Error()
}

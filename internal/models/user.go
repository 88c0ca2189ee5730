package models

import (
	"database/sql"
	"time"
)

// User mirrors a row of the users table.
type User struct {
	ID           int64     `db:"id"`
	UserName     string    `db:"user_name"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	PhoneNumber  string    `db:"phone_number"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}

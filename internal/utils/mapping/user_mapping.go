package mapping

import (
	"database/sql"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/SscSPs/banking_backoffice_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d *domain.User) models.User {
	m := models.User{
		ID:           d.ID,
		UserName:     d.UserName,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User and its role names to a domain User
func ToDomainUser(m models.User, roles []string) *domain.User {
	d := &domain.User{
		ID:           m.ID,
		UserName:     m.UserName,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		Roles:        make([]domain.Role, len(roles)),
	}
	for i, r := range roles {
		d.Roles[i] = domain.Role(r)
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &expiry
	}
	return d
}

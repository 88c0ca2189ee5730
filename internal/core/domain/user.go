package domain

import "time"

// Role is an authorization role granted to a user.
type Role string

const (
	RoleUser          Role = "User"
	RoleSupport       Role = "Support"
	RoleAdministrator Role = "Administrator"
)

// User is an identity that can sign in and own one account.
type User struct {
	ID                     int64      `json:"id"`
	UserName               string     `json:"userName"`
	FirstName              string     `json:"firstName"`
	LastName               string     `json:"lastName"`
	Email                  string     `json:"email"`
	PhoneNumber            string     `json:"phoneNumber"`
	PasswordHash           string     `json:"-"`
	Roles                  []Role     `json:"roles"`
	CreatedAt              time.Time  `json:"createdAt"`
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// HasRole reports whether the user was granted role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

package dto

import (
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// RegisterUserRequest creates a user with at least one existing role.
type RegisterUserRequest struct {
	UserName    string   `json:"userName" binding:"required,username11"`
	FirstName   string   `json:"firstName" binding:"required,max=100"`
	LastName    string   `json:"lastName" binding:"required,max=100"`
	Email       string   `json:"email" binding:"required,email"`
	PhoneNumber string   `json:"phoneNumber" binding:"required,max=20"`
	Password    string   `json:"password" binding:"required,strongpassword"`
	Roles       []string `json:"roles" binding:"required,min=1,dive,required"`
}

// UpdateRolesRequest replaces every role of a user.
type UpdateRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1,dive,required"`
}

type UserResponse struct {
	ID          int64     `json:"id"`
	UserName    string    `json:"userName"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	return UserResponse{
		ID:          user.ID,
		UserName:    user.UserName,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Roles:       roles,
		CreatedAt:   user.CreatedAt,
	}
}

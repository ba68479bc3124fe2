package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/pkg/db/models"
)

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	SellerID    *uuid.UUID `json:"sellerId,omitempty"`
	IsStaff     bool       `json:"isStaff"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToUserResponse maps a stored user onto the response shape.
func ToUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Role:        user.Role.String(),
		IsStaff:     user.IsStaff,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
	if user.Seller != nil {
		resp.SellerID = &user.Seller.ID
	}
	return resp
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// UpdateProfileRequest carries the owner-editable fields. At least one must
// be present.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Password *string `json:"password" validate:"omitempty,min=8,max=128"`
}

// UpdateUserRequest is the staff-side account patch. At least one field must
// be present.
type UpdateUserRequest struct {
	IsActive *bool   `json:"isActive"`
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
}

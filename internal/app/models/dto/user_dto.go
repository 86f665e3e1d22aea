package dto

import "github.com/yigit/atauni/internal/app/models"

// CreateUserRequest represents a staff user creation request
type CreateUserRequest struct {
	Username string      `json:"username" binding:"required,min=3,max=50"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	FullName string      `json:"full_name" binding:"required"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=admin writer support"`
}

// UpdateUserRequest represents a partial staff user update
type UpdateUserRequest struct {
	Username *string      `json:"username" binding:"omitempty,min=3,max=50"`
	Email    *string      `json:"email" binding:"omitempty,email"`
	Password *string      `json:"password" binding:"omitempty,min=6"`
	FullName *string      `json:"full_name" binding:"omitempty,min=1"`
	Role     *models.Role `json:"role" binding:"omitempty,oneof=admin writer support"`
}

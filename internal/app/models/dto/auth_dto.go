package dto

import "github.com/yigit/atauni/internal/app/models"

// LoginRequest represents staff login credentials. Username also accepts the email address.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentLoginRequest represents student login credentials
type StudentLoginRequest struct {
	StudentNo string `json:"student_no" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"604800"`
}

// AuthResponse represents a successful staff login
type AuthResponse struct {
	TokenResponse
	User *models.User `json:"user"`
}

// StudentAuthResponse represents a successful student login
type StudentAuthResponse struct {
	TokenResponse
	Student *models.Student `json:"student"`
}

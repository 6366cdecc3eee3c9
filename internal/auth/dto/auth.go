package dto

import authdomain "startupmail-backend/internal/auth/domain"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Company  string `json:"company"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SessionExchangeRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        *authdomain.User `json:"user"`
}

type SessionResponse struct {
	SessionToken string           `json:"session_token"`
	User         *authdomain.User `json:"user"`
}

type ProfileResponse struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Company   string `json:"company,omitempty"`
	Picture   string `json:"picture,omitempty"`
	CreatedAt string `json:"created_at"`
}

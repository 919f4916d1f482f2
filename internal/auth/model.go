package auth

import "github.com/foundersof404/404founders/internal/admin"

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the response for a successful login
type LoginResponse struct {
	Token   string     `json:"token"`
	Message string     `json:"message"`
	Admin   admin.Info `json:"admin"`
}

// VerifyResponse is the response for a successful token check
type VerifyResponse struct {
	Valid bool       `json:"valid"`
	Admin admin.Info `json:"admin"`
}

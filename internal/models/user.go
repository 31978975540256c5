package models

import "github.com/golang-jwt/jwt/v5"

// User is the minimal profile the storefront needs. Authentication is mocked:
// there is no password store, the login endpoint signs a token for any email.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginRequest defines the request body for the mocked login endpoint.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// JwtCustomClaims are the claims embedded in the session token.
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

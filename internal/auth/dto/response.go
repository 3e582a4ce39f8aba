package dto

import "github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/domain"

// TokenResponse is the success body of both login and refresh.
type TokenResponse struct {
	Data domain.TokenPair `json:"data"`
}

// ErrorResponse is the failure body of every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

package dto

import (
	"time"

	"storechain/internal/domain/auth"
)

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// FromToken creates TokenResponse from an issued token.
func FromToken(t *auth.Token) TokenResponse {
	return TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresAt:   t.ExpiresAt,
	}
}

// SignupResponse pairs a created principal id with an immediate login.
type SignupResponse struct {
	ID    string        `json:"id"`
	Token TokenResponse `json:"token"`
}

package models

import "time"

// TokenTypeBearer is the only token type issued to clients
const TokenTypeBearer = "bearer"

// Session binds an access/refresh token pair to a user
type Session struct {
	UserID           string    `json:"user_id"`
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// AccessExpired reports whether the access token has expired at t
func (s Session) AccessExpired(t time.Time) bool {
	return s.ExpiresAt.Before(t)
}

// RefreshExpired reports whether the refresh token has expired at t
func (s Session) RefreshExpired(t time.Time) bool {
	return s.RefreshExpiresAt.Before(t)
}

// TokenPair is the response body of every token-issuing endpoint
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // Access token TTL in seconds
}

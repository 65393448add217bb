package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds the administrator credentials.
type LoginRequest struct {
	ID        string `json:"id" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued session token and where to go next.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in,omitempty"`
	Redirect    string    `json:"redirect"`
	IssuedAt    time.Time `json:"issued_at"`
}

// SessionStatus reports whether the caller holds a live session.
type SessionStatus struct {
	Authenticated bool   `json:"authenticated"`
	AdminID       string `json:"admin_id,omitempty"`
}

// SessionClaims is the JWT payload. The registered ID claim carries the
// session id whose flag must exist for the token to be honoured.
type SessionClaims struct {
	AdminID string `json:"admin_id"`
	jwt.RegisteredClaims
}

// SessionID returns the session identifier carried by the token.
func (c *SessionClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.ID
}

// Session is the server-side authenticated flag of one login.
type Session struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

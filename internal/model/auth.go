package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthUser is the identity attached to a session. Its ID is the
// accounts row primary key.
type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is the provider's session object: a signed token plus the
// user it belongs to.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	User      AuthUser  `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginRequest carries credentials for password sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the session and the hydrated account.
type LoginResponse struct {
	Session *Session `json:"session"`
	Account *Account `json:"account"`
}

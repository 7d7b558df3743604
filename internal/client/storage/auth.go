package storage

import (
	"context"
)

// SessionStorage defines interface for storing the signed-in session on the device.
// This is the lowest storage layer: tokens are stored as handed over
// (the auth layer may seal them before saving).
type SessionStorage interface {
	// SaveSession replaces the whole session
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns ErrAuthNotFound if nobody is signed in
	GetSession(ctx context.Context) (*Session, error)

	// UpdateTokens replaces both tokens of the stored session in a single transaction.
	// Returns ErrAuthNotFound if there is no session to update.
	UpdateTokens(ctx context.Context, accessToken, refreshToken string) error

	// UpdateProfile replaces the profile fields of the stored session in a single
	// transaction, leaving tokens and points as they are.
	// Returns ErrAuthNotFound if there is no session to update.
	UpdateProfile(ctx context.Context, profile Profile) error

	// DeleteSession removes the session (logout)
	DeleteSession(ctx context.Context) error
}

// Session represents the signed-in user on the device: tokens plus the
// profile claims decoded from the access token at login.
type Session struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Dob          string `json:"dob"`
	Phone        string `json:"phone"`
	Sex          string `json:"sex"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Point        int64  `json:"point"`      // баланс бонусных баллов
	ExpiresAt    int64  `json:"expires_at"` // unix время истечения access token
}

// Profile is the user-editable part of Session
type Profile struct {
	Name  string
	Phone string
	Dob   string
	Sex   string
}

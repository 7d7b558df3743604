package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/koishop/internal/client/storage"
)

// Claims represents the profile claims the server puts into the access token
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Dob    string `json:"dob"`
	Phone  string `json:"phone"`
	Sex    string `json:"sex"`
	Point  int64  `json:"point"`
}

// DecodeClaims извлекает claims из access token без проверки подписи.
// Подпись проверяет сервер, клиенту ключ неизвестен.
func DecodeClaims(accessToken string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("failed to decode access token: %w", err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("access token has no user_id claim")
	}
	return claims, nil
}

// Session builds the stored session from the claims and the token pair
func (c *Claims) Session(accessToken, refreshToken string) *storage.Session {
	session := &storage.Session{
		UserID:       c.UserID,
		Email:        c.Email,
		Role:         c.Role,
		Name:         c.Name,
		Dob:          c.Dob,
		Phone:        c.Phone,
		Sex:          c.Sex,
		Point:        c.Point,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if c.ExpiresAt != nil {
		session.ExpiresAt = c.ExpiresAt.Unix()
	}
	return session
}

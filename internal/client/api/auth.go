package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iudanet/koishop/pkg/api"
)

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenPair, error) {
	var resp api.TokenPair
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return nil, fmt.Errorf("login request failed: missing tokens in response")
	}
	return &resp, nil
}

// Register регистрирует нового пользователя. Сервер отправляет OTP на email.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, req, nil); err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	return nil
}

// VerifyOTP подтверждает регистрацию одноразовым кодом
func (c *Client) VerifyOTP(ctx context.Context, req api.VerifyOTPRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/verifyOtp", nil, req, nil); err != nil {
		return fmt.Errorf("verify otp request failed: %w", err)
	}
	return nil
}

// UpdateProfile обновляет профиль пользователя
func (c *Client) UpdateProfile(ctx context.Context, userID string, req api.UpdateProfileRequest) error {
	path := "/user/" + url.PathEscape(userID)
	if err := c.doRequest(ctx, http.MethodPut, path, nil, req, nil); err != nil {
		return fmt.Errorf("update profile request failed: %w", err)
	}
	return nil
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/koishop/pkg/api"
)

const refreshKey = "refresh"

// RefreshToken exchanges a refresh token for a new token pair.
// The call bypasses the authorization pipeline: no bearer header, no retry.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*api.TokenPair, error) {
	rc, err := newRequest(http.MethodPost, refreshPath, api.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, rc, "")
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}

	var pair api.TokenPair
	if err := resp.decode(&pair); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, fmt.Errorf("refresh request failed: malformed token pair in response")
	}

	return &pair, nil
}

// refresh обновляет токены и возвращает новый access token.
// Параллельные вызовы объединяются в одно обращение к серверу.
// staleAccessToken - токен, с которым был отправлен отклоненный запрос:
// если в хранилище уже лежит другой токен, значит его обновил другой запрос
// и повторное обновление не нужно.
func (c *Client) refresh(ctx context.Context, staleAccessToken string) (string, error) {
	ch := c.refreshes.DoChan(refreshKey, func() (any, error) {
		// Не привязываем общее обновление к отмене контекста первого вызывающего
		return c.refreshTokens(context.WithoutCancel(ctx), staleAccessToken)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) refreshTokens(ctx context.Context, staleAccessToken string) (string, error) {
	accessToken, refreshToken, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load tokens: %w", err)
	}

	if accessToken != "" && accessToken != staleAccessToken {
		c.logger.Debug("tokens already rotated by a concurrent request")
		return accessToken, nil
	}
	if refreshToken == "" {
		return "", errNoRefreshToken
	}

	pair, err := c.RefreshToken(ctx, refreshToken)
	if err != nil {
		c.logger.Warn("token refresh failed", "error", err)
		return "", err
	}

	if err := c.tokens.SaveTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return "", fmt.Errorf("failed to save refreshed tokens: %w", err)
	}

	c.logger.Info("tokens refreshed")
	return pair.AccessToken, nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/koishop/pkg/api"
)

const (
	defaultTimeout = 30 * time.Second
	refreshPath    = "/auth/refreshToken"
)

var (
	// ErrUnauthorized matches any *APIError with status 401
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired is returned when a 401 could not be recovered by refreshing tokens.
	// The caller is expected to force re-authentication.
	ErrSessionExpired = errors.New("session expired")

	// ErrTransport wraps network failures where no response was received
	ErrTransport = errors.New("transport error")

	errNoRefreshToken = errors.New("no refresh token available")
)

// APIError is an application error reported by the server,
// either by a non-2xx status or by an envelope with status "error".
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is reports 401 errors as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// TokenStore provides the bearer tokens used by the client.
// GetTokens returns empty strings and a nil error when nothing is stored.
// SaveTokens must replace both tokens atomically.
type TokenStore interface {
	GetTokens(ctx context.Context) (accessToken, refreshToken string, err error)
	SaveTokens(ctx context.Context, accessToken, refreshToken string) error
}

// Client представляет HTTP клиент для взаимодействия с сервером магазина.
// Все запросы проходят через конвейер авторизации: подстановка bearer токена,
// обнаружение 401, одно обновление токенов и один повтор запроса.
type Client struct {
	httpClient *http.Client
	tokens     TokenStore
	logger     *slog.Logger
	refreshes  singleflight.Group
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient заменяет HTTP клиент по умолчанию
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout задает таймаут транспорта
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger задает логгер клиента
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient создает новый API клиент.
// tokens может быть nil, тогда все запросы анонимные.
func NewClient(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		logger:  slog.Default(),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requestContext describes one logical call. retried flips at most once.
type requestContext struct {
	header  http.Header
	query   url.Values
	method  string
	path    string
	body    []byte
	retried bool
}

func newRequest(method, path string, body any) (*requestContext, error) {
	rc := &requestContext{method: method, path: path}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		rc.body = data
	}
	return rc, nil
}

type rawResponse struct {
	body       []byte
	statusCode int
}

// doRequest выполняет запрос через конвейер авторизации и декодирует data из конверта в result
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	rc, err := newRequest(method, path, body)
	if err != nil {
		return err
	}
	rc.query = query
	return c.do(ctx, rc, result)
}

func (c *Client) do(ctx context.Context, rc *requestContext, result any) error {
	accessToken, err := c.currentAccessToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, rc, accessToken)
	if err != nil {
		return err
	}

	if resp.statusCode == http.StatusUnauthorized && !rc.retried && c.tokens != nil {
		rc.retried = true
		c.logger.Debug("access token rejected, refreshing", "method", rc.method, "path", rc.path)

		newAccessToken, err := c.refresh(ctx, accessToken)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			if errors.Is(err, errNoRefreshToken) {
				// Нечем обновляться: отдаем исходный 401 как есть
				return resp.decode(nil)
			}
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}

		c.logger.Debug("replaying request with refreshed token", "method", rc.method, "path", rc.path)
		resp, err = c.send(ctx, rc, newAccessToken)
		if err != nil {
			return err
		}
	}

	return resp.decode(result)
}

func (c *Client) currentAccessToken(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	accessToken, _, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load tokens: %w", err)
	}
	return accessToken, nil
}

// send выполняет один HTTP обмен и читает тело ответа целиком
func (c *Client) send(ctx context.Context, rc *requestContext, accessToken string) (*rawResponse, error) {
	target := c.baseURL + rc.path
	if len(rc.query) > 0 {
		target += "?" + rc.query.Encode()
	}

	var bodyReader io.Reader
	if rc.body != nil {
		bodyReader = bytes.NewReader(rc.body)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range rc.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, rc.method, rc.path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	return &rawResponse{statusCode: resp.StatusCode, body: respBody}, nil
}

// decode разбирает конверт ответа. Ошибки сервера превращаются в *APIError.
func (r *rawResponse) decode(result any) error {
	var env api.Envelope
	envErr := json.Unmarshal(r.body, &env)

	if r.statusCode < 200 || r.statusCode >= 300 {
		apiErr := &APIError{StatusCode: r.statusCode}
		if envErr == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if envErr != nil {
		return fmt.Errorf("failed to decode response: %w", envErr)
	}
	if env.Status == api.StatusError {
		return &APIError{StatusCode: r.statusCode, Message: env.Message}
	}

	if result != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

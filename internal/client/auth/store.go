package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/koishop/internal/client/api"
	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/crypto"
)

// SessionStore is the sealing layer between the auth logic and storage.
// With a sealer it encrypts tokens before saving and decrypts them on read;
// without one tokens are stored as is.
type SessionStore struct {
	storage storage.SessionStorage
	sealer  *crypto.Sealer
}

// Compile-time check that SessionStore can feed the request pipeline
var _ api.TokenStore = (*SessionStore)(nil)

// NewSessionStore создает хранилище сессии. sealer может быть nil.
func NewSessionStore(st storage.SessionStorage, sealer *crypto.Sealer) *SessionStore {
	return &SessionStore{
		storage: st,
		sealer:  sealer,
	}
}

// NewDeviceSealer derives the token sealing key from the device secret and the
// salt kept in the metadata bucket. An empty secret disables sealing (nil, nil).
func NewDeviceSealer(ctx context.Context, meta storage.MetadataStorage, secret string) (*crypto.Sealer, error) {
	if secret == "" {
		return nil, nil
	}

	salt, err := meta.SealingSalt(ctx)
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveSealingKey(secret, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}

	return crypto.NewSealer(key)
}

// Save запечатывает токены и сохраняет сессию целиком
func (s *SessionStore) Save(ctx context.Context, session *storage.Session) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}

	sealed := *session // копируем, чтобы не менять входящую
	var err error
	sealed.AccessToken, sealed.RefreshToken, err = s.seal(session.AccessToken, session.RefreshToken)
	if err != nil {
		return err
	}

	return s.storage.SaveSession(ctx, &sealed)
}

// Load возвращает сессию с расшифрованными токенами или storage.ErrAuthNotFound
func (s *SessionStore) Load(ctx context.Context) (*storage.Session, error) {
	session, err := s.storage.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	session.AccessToken, session.RefreshToken, err = s.open(session.AccessToken, session.RefreshToken)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Delete удаляет сессию. Отсутствие сессии не ошибка.
func (s *SessionStore) Delete(ctx context.Context) error {
	if err := s.storage.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return err
	}
	return nil
}

// GetTokens implements api.TokenStore. Without a session both tokens are empty.
func (s *SessionStore) GetTokens(ctx context.Context) (string, string, error) {
	session, err := s.Load(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return session.AccessToken, session.RefreshToken, nil
}

// SaveTokens implements api.TokenStore: both tokens are replaced in one write
func (s *SessionStore) SaveTokens(ctx context.Context, accessToken, refreshToken string) error {
	sealedAccess, sealedRefresh, err := s.seal(accessToken, refreshToken)
	if err != nil {
		return err
	}
	return s.storage.UpdateTokens(ctx, sealedAccess, sealedRefresh)
}

// UpdateProfile replaces the profile fields of the stored session and
// returns the session as stored afterwards
func (s *SessionStore) UpdateProfile(ctx context.Context, profile storage.Profile) (*storage.Session, error) {
	if err := s.storage.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

func (s *SessionStore) seal(accessToken, refreshToken string) (string, string, error) {
	if s.sealer == nil {
		return accessToken, refreshToken, nil
	}

	sealedAccess, err := s.sealer.Seal(accessToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to seal access token: %w", err)
	}
	sealedRefresh, err := s.sealer.Seal(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to seal refresh token: %w", err)
	}
	return sealedAccess, sealedRefresh, nil
}

func (s *SessionStore) open(accessToken, refreshToken string) (string, string, error) {
	if s.sealer == nil {
		return accessToken, refreshToken, nil
	}

	access, err := s.sealer.Open(accessToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to open access token: %w", err)
	}
	refresh, err := s.sealer.Open(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to open refresh token: %w", err)
	}
	return access, refresh, nil
}

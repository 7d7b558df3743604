package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/models"
	"github.com/iudanet/koishop/internal/validation"
	pkgapi "github.com/iudanet/koishop/pkg/api"
)

var (
	// ErrNotSignedIn is returned by operations that need a stored session
	ErrNotSignedIn = errors.New("not signed in")

	// ErrForbidden is returned when the signed-in role may not perform the operation.
	// No request is sent in that case.
	ErrForbidden = errors.New("operation not allowed for this role")
)

// Client is the part of the server API the auth service needs
type Client interface {
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenPair, error)
	Register(ctx context.Context, req pkgapi.RegisterRequest) error
	VerifyOTP(ctx context.Context, req pkgapi.VerifyOTPRequest) error
	UpdateProfile(ctx context.Context, userID string, req pkgapi.UpdateProfileRequest) error
}

// Service предоставляет функции авторизации и управления сессией
type Service struct {
	client   Client
	sessions *SessionStore
	profile  storage.ProfileStorage
	wiper    storage.Wiper
	logger   *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(client Client, sessions *SessionStore, profile storage.ProfileStorage, wiper storage.Wiper, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		sessions: sessions,
		profile:  profile,
		wiper:    wiper,
		logger:   logger,
	}
}

// Login выполняет аутентификацию, декодирует claims из access token
// и сохраняет сессию вместе с токенами одной записью
func (s *Service) Login(ctx context.Context, email, password string) (*storage.Session, error) {
	verr := &models.ValidationError{}
	verr.Check("email", validation.ValidateEmail(email))
	verr.Check("password", validation.Required(password))
	if err := verr.Err(); err != nil {
		return nil, err
	}

	pair, err := s.client.Login(ctx, pkgapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	claims, err := DecodeClaims(pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := claims.Session(pair.AccessToken, pair.RefreshToken)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("signed in", "user_id", session.UserID, "role", session.Role)
	return session, nil
}

// Register отправляет форму регистрации, сервер высылает OTP на email
func (s *Service) Register(ctx context.Context, form models.RegistrationForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if err := s.client.Register(ctx, form.Request()); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// VerifyOTP подтверждает регистрацию: форма отправляется повторно вместе с кодом
func (s *Service) VerifyOTP(ctx context.Context, form models.RegistrationForm, otp string) error {
	if err := form.Validate(); err != nil {
		return err
	}
	verr := &models.ValidationError{}
	verr.Check("otp", validation.ValidateOTP(otp))
	if err := verr.Err(); err != nil {
		return err
	}

	req := pkgapi.VerifyOTPRequest{RegisterRequest: form.Request(), OTP: otp}
	if err := s.client.VerifyOTP(ctx, req); err != nil {
		return fmt.Errorf("otp verification failed: %w", err)
	}
	return nil
}

// UpdateProfile отправляет профиль на сервер и обновляет локальную копию
func (s *Service) UpdateProfile(ctx context.Context, form models.ProfileForm) (*storage.Session, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	req := pkgapi.UpdateProfileRequest{
		Name:    form.Name,
		Phone:   form.Phone,
		Dob:     form.Dob,
		Sex:     form.Sex,
		Address: form.Address,
	}
	if err := s.client.UpdateProfile(ctx, session.UserID, req); err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}

	// Токены могли обновиться во время запроса: меняем только поля профиля
	session, err = s.sessions.UpdateProfile(ctx, storage.Profile{
		Name:  form.Name,
		Phone: form.Phone,
		Dob:   form.Dob,
		Sex:   form.Sex,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	if err := s.profile.SaveAddress(ctx, form.Address); err != nil {
		return nil, fmt.Errorf("failed to save address: %w", err)
	}

	return session, nil
}

// Address returns the cached shipping address or storage.ErrAddressNotFound
func (s *Service) Address(ctx context.Context) (*pkgapi.Address, error) {
	return s.profile.GetAddress(ctx)
}

// SavePoints обновляет локальный баланс баллов
func (s *Service) SavePoints(ctx context.Context, points int64) error {
	return s.profile.SavePoints(ctx, points)
}

// Logout удаляет все локальные данные: сессию, профиль и корзину
func (s *Service) Logout(ctx context.Context) error {
	if err := s.wiper.Wipe(ctx); err != nil {
		return fmt.Errorf("failed to wipe local data: %w", err)
	}
	s.logger.Info("signed out")
	return nil
}

// Current returns the stored session, or ErrNotSignedIn (wrapping storage.ErrAuthNotFound)
func (s *Service) Current(ctx context.Context) (*storage.Session, error) {
	session, err := s.sessions.Load(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrNotSignedIn, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// RequireRole returns the current session if its role is one of roles
func (s *Service) RequireRole(ctx context.Context, roles ...string) (*storage.Session, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(roles, session.Role) {
		return nil, fmt.Errorf("%w: role %q", ErrForbidden, session.Role)
	}
	return session, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/auth"
	"github.com/brightrock/efficiency-platform/internal/config"
	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/events"
	"github.com/brightrock/efficiency-platform/internal/repository"
	"github.com/brightrock/efficiency-platform/internal/session"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

const invalidCredentialsMessage = "Invalid email or password"

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ForgotPasswordInput starts a reset.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput completes a reset.
type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// AuthResult is the session state after an auth flow plus the page to load next.
type AuthResult struct {
	Status    domain.AuthStatus
	Redirect  string
	ExpiresAt time.Time
}

// AuthService coordinates login, role selection and password flows on top of the session store.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	sessions   *session.Manager
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
	now        func() time.Time
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Sessions          *session.Manager
	Dispatcher        events.Dispatcher
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		now:        time.Now,
	}
}

// Login signs a user in by email. Any previously selected role is dropped.
func (s *AuthService) Login(ctx context.Context, client string, input LoginInput) (*AuthResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewUnauthorized(invalidCredentialsMessage)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := auth.CheckPassword(user.PasswordHash, input.Password); err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentialsMessage)
	}

	now := s.now().UTC()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("record last login: %w", err)
	}

	return s.signIn(ctx, client, *user, nil, user.PasswordHash == "", auth.PathRoleSelection)
}

// Register creates an account and signs it in without a role.
func (s *AuthService) Register(ctx context.Context, client string, input RegisterInput) (*AuthResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{
			"fields": map[string]string{"email": "Email is already registered"},
		})
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Status:       domain.UserStatusActive,
		LastLogin:    &now,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publish(ctx, events.New(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}))

	return s.signIn(ctx, client, *user, nil, false, auth.PathRoleSelection)
}

// DirectAccess signs in as the demo account of role and selects that role in one write.
func (s *AuthService) DirectAccess(ctx context.Context, client string, role domain.Role) (*AuthResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, user := range users {
		if user.Role == role && role.IsPlatform() {
			return s.signIn(ctx, client, user, &role, true, auth.RoleHomePath(role))
		}
	}
	return nil, apperrors.NewDomainError("NOT_FOUND", fmt.Sprintf("No user found with role %s", role), http.StatusNotFound, nil)
}

// SelectRole stores the chosen platform role for a signed-in client.
func (s *AuthService) SelectRole(ctx context.Context, client string, role domain.Role) (*AuthResult, error) {
	if !role.IsPlatform() {
		return nil, apperrors.NewFieldErrors(map[string]string{"role": "Please select a valid role"})
	}
	if err := s.sessions.SetRole(ctx, client, &role); err != nil {
		if errors.Is(err, session.ErrBrokenChain) {
			return nil, apperrors.NewRedirectRequired("UNAUTHORIZED", "authentication required", http.StatusUnauthorized, auth.PathLogin)
		}
		return nil, fmt.Errorf("select role: %w", err)
	}
	return s.result(ctx, client, auth.RoleHomePath(role), time.Time{})
}

// Logout clears every session key of the client.
func (s *AuthService) Logout(ctx context.Context, client string) (*AuthResult, error) {
	if err := s.sessions.Clear(ctx, client); err != nil {
		return nil, fmt.Errorf("clear session: %w", err)
	}
	return &AuthResult{Redirect: auth.PathLogin}, nil
}

// Status reports the stored auth status and where the default route would send the client.
func (s *AuthService) Status(ctx context.Context, client string) (*AuthResult, error) {
	status, err := s.sessions.CheckStatus(ctx, client)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Status: status, Redirect: auth.ResolveDefaultRedirect(status)}, nil
}

// VerifyToken validates the stored token's signature and expiry.
func (s *AuthService) VerifyToken(ctx context.Context, client string) (*auth.Claims, error) {
	status, err := s.sessions.CheckStatus(ctx, client)
	if err != nil {
		return nil, err
	}
	if status.Token == nil {
		return nil, apperrors.NewRedirectRequired("UNAUTHORIZED", "authentication required", http.StatusUnauthorized, auth.PathLogin)
	}
	claims, err := s.tokenMgr.ParseToken(*status.Token)
	if err != nil {
		return nil, apperrors.NewRedirectRequired("UNAUTHORIZED", "invalid or expired token", http.StatusUnauthorized, auth.PathLogin)
	}
	return claims, nil
}

// RequestPasswordReset always succeeds from the caller's point of view so account existence is not disclosed.
func (s *AuthService) RequestPasswordReset(ctx context.Context, input ForgotPasswordInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Debug("password reset for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	token := &domain.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.resetTTL).UTC(),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.publish(ctx, events.New(events.EventPasswordResetRequested, user.ID, events.PasswordResetRequestedPayload{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}))
	return nil
}

// ResetPassword validates the token and replaces the password hash.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	invalid := apperrors.NewValidationError("reset link is invalid or has expired", nil)
	token, err := s.resets.GetByToken(ctx, input.Token)
	if errors.Is(err, apperrors.ErrNotFound) {
		return invalid
	}
	if err != nil {
		return fmt.Errorf("lookup reset token: %w", err)
	}
	if !token.Usable(s.now()) {
		return invalid
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return invalid
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) signIn(ctx context.Context, client string, user domain.User, role *domain.Role, demo bool, redirect string) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user, demo)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	view := user.SessionView()
	if err := s.sessions.Save(ctx, client, domain.Session{Token: &token, User: &view, Role: role}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s.result(ctx, client, redirect, exp)
}

func (s *AuthService) result(ctx context.Context, client, redirect string, exp time.Time) (*AuthResult, error) {
	status, err := s.sessions.CheckStatus(ctx, client)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Status: status, Redirect: redirect, ExpiresAt: exp}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "mrp/internal/errors"
)

const bearerPrefix = "Bearer "

// AuthService registers users and manages their sessions.
type AuthService struct {
	users      *UserStore
	tokens     *TokenStore
	bcryptCost int
	logger     *slog.Logger
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithBcryptCost overrides the password hashing cost. Tests use
// bcrypt.MinCost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) {
		s.bcryptCost = cost
	}
}

// NewAuthService creates a new auth service
func NewAuthService(users *UserStore, tokens *TokenStore, logger *slog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger.With(slog.String("service", "auth")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account. ErrUsernameTaken is returned unwrapped so the
// caller can answer with a conflict. bcrypt only hashes the first 72 bytes, so
// longer passwords are rejected as invalid input.
func (s *AuthService) Register(ctx context.Context, username, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return User{}, ErrPasswordTooLong
	}
	if err != nil {
		return User{}, apperrors.Internal("failed to hash password", err)
	}

	user, err := s.users.Create(username, hash)
	if err != nil {
		return User{}, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and issues a new bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, ok := s.users.FindByUsername(username)
	if !ok {
		s.logger.WarnContext(ctx, "login for unknown user", slog.String("username", username))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", apperrors.Internal("failed to verify password", err)
		}
		s.logger.WarnContext(ctx, "login with wrong password", slog.Int("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	token := s.tokens.Issue(user.ID)
	s.logger.InfoContext(ctx, "user logged in", slog.Int("user_id", user.ID))
	return token, nil
}

// Logout revokes the bearer token carried in the Authorization header.
func (s *AuthService) Logout(ctx context.Context, authorization string) error {
	token, ok := BearerToken(authorization)
	if !ok || !s.tokens.Revoke(token) {
		return apperrors.ErrMissingToken
	}
	s.logger.InfoContext(ctx, "user logged out")
	return nil
}

// Authenticator resolves the user behind a bearer token.
type Authenticator struct {
	users  *UserStore
	tokens *TokenStore
}

// NewAuthenticator creates an authenticator over the given stores
func NewAuthenticator(users *UserStore, tokens *TokenStore) *Authenticator {
	return &Authenticator{users: users, tokens: tokens}
}

// UserFromAuthorization parses "Bearer <token>" and returns its user. Any
// failure is reported as Unauthenticated.
func (a *Authenticator) UserFromAuthorization(authorization string) (User, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return User{}, apperrors.ErrMissingToken
	}

	id, ok := a.tokens.Lookup(token)
	if !ok {
		return User{}, apperrors.ErrMissingToken
	}

	user, ok := a.users.FindByID(id)
	if !ok {
		return User{}, apperrors.ErrMissingToken
	}
	return user, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(authorization string) (string, bool) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(authorization[len(bearerPrefix):])
	return token, token != ""
}

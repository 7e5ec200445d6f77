package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/idk-code404/TerminusChat/internal/store"
)

var (
	// ErrInvalidCredentials is returned when username/password don't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when trying to register with an existing username.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidUsername is returned when the username doesn't meet constraints.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidPassword is returned when the password doesn't meet constraints.
	ErrInvalidPassword = errors.New("invalid password")
)

// IdentityUpserter is the piece of the chat identity store the auth flow
// writes through: registering or logging in seeds the account's display
// name under its identity token.
type IdentityUpserter interface {
	Upsert(token, name string)
}

// Service provides account registration and login.
type Service struct {
	store      store.UserStore
	identities IdentityUpserter
	jwtConfig  *JWTConfig
}

// NewService creates a new authentication service.
func NewService(userStore store.UserStore, identities IdentityUpserter, jwtConfig *JWTConfig) *Service {
	return &Service{
		store:      userStore,
		identities: identities,
		jwtConfig:  jwtConfig,
	}
}

// Register creates an account with a hashed password, seeds the chat
// identity store under a freshly minted identity token, and returns a
// signed JWT carrying that token.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 32 {
		return "", ErrInvalidUsername
	}
	if len(password) < 6 {
		return "", ErrInvalidPassword
	}

	existing, err := s.store.GetUserByUsername(ctx, username)
	if err == nil && existing != nil {
		return "", ErrUserExists
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("check existing user: %w", err)
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, username, hashedPassword, uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	s.identities.Upsert(user.IdentityToken, user.Username)

	token, err := GenerateToken(s.jwtConfig, user.ID, user.Username, user.IdentityToken)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// Login validates credentials and returns a JWT token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if errPwd := ComparePassword(user.PasswordHash, password); errPwd != nil {
		return "", ErrInvalidCredentials
	}

	s.identities.Upsert(user.IdentityToken, user.Username)

	token, err := GenerateToken(s.jwtConfig, user.ID, user.Username, user.IdentityToken)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}

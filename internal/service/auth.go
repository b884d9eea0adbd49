package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/model"
	"emoticon-rest-api/internal/repository"
)

const (
	// MinPasswordLength is the shortest password accepted at sign-up.
	MinPasswordLength = 4

	// MaxUsernameLength matches the users.username column width, in characters.
	MaxUsernameLength = 20
)

// AuthService handles registration and sign-in.
type AuthService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens *TokenService
	log    logging.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens *TokenService, log logging.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log.With("component", "auth_service"),
	}
}

// SignUp registers a new user and returns an access token for it.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (*model.Token, error) {
	if username == "" || utf8.RuneCountInString(username) > MaxUsernameLength ||
		utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrRejectedCredential
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			s.log.Info(ctx, "failed to save new user to database", "username", username)
			return nil, ErrDuplicateCredential
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return s.tokens.Issue(user)
}

// SignIn verifies credentials and returns an access token.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*model.Token, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.Info(ctx, "sign-in for unknown user", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Info(ctx, "password mismatch", "username", username)
		return nil, ErrInvalidCredentials
	}

	s.log.Info(ctx, "user signed in", "user_id", user.ID, "username", user.Username)
	return s.tokens.Issue(user)
}

// Authenticate validates an access token and returns its identity.
func (s *AuthService) Authenticate(tokenString string) (*model.Identity, error) {
	return s.tokens.Validate(tokenString)
}

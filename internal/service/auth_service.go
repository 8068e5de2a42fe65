package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinevault/internal/auth"
	"cinevault/internal/cryptox"
	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService issues the token claims the rest of the API verifies.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login returns the sanitized user plus a signed access token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type authService struct {
	users    repository.UserRepository
	cipher   *cryptox.Cipher
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, cipher *cryptox.Cipher, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		cipher:   cipher,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	encrypted, err := s.cipher.Encrypt(password)
	if err != nil {
		return nil, fmt.Errorf("encrypt password: %w", err)
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		Password: encrypted,
		Status:   "Yes",
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	stored, err := s.cipher.Decrypt(user.Password)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.IsAdmin, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	return sanitizeUser(user), token, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinevault/internal/cryptox"
	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

var (
	// ErrUserAlreadyExists is returned when a username or email is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// CreateUserInput carries the fields of an admin user-creation call.
// Password arrives as plaintext and is encrypted before it touches the store.
type CreateUserInput struct {
	Username   string
	Email      string
	Password   string
	ProfilePic string
	Status     string
	IsAdmin    bool
}

// UserService describes account lifecycle operations.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	// Update merges the patch into the stored document; omitted fields
	// keep their prior values. A supplied password is re-encrypted.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// Get returns the user with the password field stripped.
	Get(ctx context.Context, id string) (*domain.User, error)
	// List returns all users, or only the 10 newest when newestOnly is set.
	List(ctx context.Context, newestOnly bool) ([]domain.User, error)
	MonthlyStats(ctx context.Context) ([]domain.MonthlyCount, error)
	SetProfilePic(ctx context.Context, id, location string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	cipher *cryptox.Cipher
}

func NewUserService(users repository.UserRepository, cipher *cryptox.Cipher) UserService {
	return &userService{users: users, cipher: cipher}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if input.Password == "" {
		return nil, errors.New("password is required")
	}

	encrypted, err := s.cipher.Encrypt(input.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypt password: %w", err)
	}

	status := input.Status
	if status == "" {
		status = "Yes"
	}

	user := &domain.User{
		Username:   username,
		Email:      email,
		Password:   encrypted,
		ProfilePic: input.ProfilePic,
		IsAdmin:    input.IsAdmin,
		Status:     status,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Password != nil {
		encrypted, err := s.cipher.Encrypt(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("encrypt password: %w", err)
		}
		patch.Password = &encrypted
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context, newestOnly bool) ([]domain.User, error) {
	var limit int64
	if newestOnly {
		limit = 10
	}
	return s.users.List(ctx, limit)
}

func (s *userService) MonthlyStats(ctx context.Context) ([]domain.MonthlyCount, error) {
	return s.users.CountByMonth(ctx)
}

func (s *userService) SetProfilePic(ctx context.Context, id, location string) (*domain.User, error) {
	return s.Update(ctx, id, domain.UserPatch{ProfilePic: &location})
}

// sanitizeUser strips the encrypted password before the document leaves
// the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.Password = ""
	return &clean
}

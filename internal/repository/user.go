package repository

import (
	"context"
	"errors"

	"cinevault/internal/domain"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate key")

// UserRepository defines persistence operations for User documents.
type UserRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update applies the non-nil patch fields and returns the document
	// as it stands after the write.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// List returns users sorted newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int64) ([]domain.User, error)
	// CountByMonth groups all users by calendar month of creation.
	CountByMonth(ctx context.Context) ([]domain.MonthlyCount, error)
}

package repository

import (
	"context"

	"cinevault/internal/domain"
)

// ListRepository defines persistence operations for List documents.
type ListRepository interface {
	Create(ctx context.Context, list *domain.List) (string, error)
	GetByID(ctx context.Context, id string) (*domain.List, error)
	Update(ctx context.Context, id string, patch domain.ListPatch) (*domain.List, error)
	Delete(ctx context.Context, id string) error
	// Sample draws a random subset of size documents first and only then
	// narrows by type/genre equality when supplied. The order matters:
	// discovery variety wins over completeness, so a filtered call may
	// return fewer matches than exist in the collection.
	Sample(ctx context.Context, contentType, genre string, size int64) ([]domain.List, error)
}

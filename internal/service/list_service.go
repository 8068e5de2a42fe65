package service

import (
	"context"
	"errors"

	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

// sampleSize caps every list query at a random draw of 20 documents.
const sampleSize = 20

// ListService manages curated content lists.
type ListService interface {
	Create(ctx context.Context, list *domain.List) (*domain.List, error)
	Update(ctx context.Context, id string, patch domain.ListPatch) (*domain.List, error)
	Delete(ctx context.Context, id string) error
	// Sample draws up to 20 random lists, then narrows by type/genre
	// when supplied. Filtering happens after sampling, so a filtered
	// query can return fewer matches than exist in the store.
	Sample(ctx context.Context, contentType, genre string) ([]domain.List, error)
}

type listService struct {
	lists repository.ListRepository
}

func NewListService(lists repository.ListRepository) ListService {
	return &listService{lists: lists}
}

func (s *listService) Create(ctx context.Context, list *domain.List) (*domain.List, error) {
	if list.Title == "" {
		return nil, errors.New("title is required")
	}
	if list.Type == "" {
		return nil, errors.New("type is required")
	}
	if list.Genre == "" {
		return nil, errors.New("genre is required")
	}
	if list.Content == nil {
		list.Content = []string{}
	}

	if _, err := s.lists.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *listService) Update(ctx context.Context, id string, patch domain.ListPatch) (*domain.List, error) {
	return s.lists.Update(ctx, id, patch)
}

func (s *listService) Delete(ctx context.Context, id string) error {
	return s.lists.Delete(ctx, id)
}

func (s *listService) Sample(ctx context.Context, contentType, genre string) ([]domain.List, error) {
	return s.lists.Sample(ctx, contentType, genre, sampleSize)
}

package service

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

// memUserRepo is an in-memory UserRepository used across the service tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return "", fmt.Errorf("%w: username or email taken", repository.ErrDuplicate)
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID.Hex()] = *user
	return user.ID.Hex(), nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}
	if patch.ProfilePic != nil {
		user.ProfilePic = *patch.ProfilePic
	}
	if patch.IsAdmin != nil {
		user.IsAdmin = *patch.IsAdmin
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}

	r.users[id] = user
	return &user, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(ctx context.Context, limit int64) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	if limit > 0 && int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r *memUserRepo) CountByMonth(ctx context.Context) ([]domain.MonthlyCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byMonth := make(map[int]int)
	for _, user := range r.users {
		byMonth[int(user.CreatedAt.Month())]++
	}

	counts := make([]domain.MonthlyCount, 0, len(byMonth))
	for month, total := range byMonth {
		counts = append(counts, domain.MonthlyCount{Month: month, Total: total})
	}
	return counts, nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

// memListRepo is an in-memory ListRepository. Sample draws in insertion
// order, which keeps the sample-then-filter behavior observable in tests.
type memListRepo struct {
	mu    sync.Mutex
	order []string
	lists map[string]domain.List
}

func newMemListRepo() *memListRepo {
	return &memListRepo{lists: make(map[string]domain.List)}
}

func (r *memListRepo) Create(ctx context.Context, list *domain.List) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if list.ID.IsZero() {
		list.ID = primitive.NewObjectID()
	}
	r.lists[list.ID.Hex()] = *list
	r.order = append(r.order, list.ID.Hex())
	return list.ID.Hex(), nil
}

func (r *memListRepo) GetByID(ctx context.Context, id string) (*domain.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &list, nil
}

func (r *memListRepo) Update(ctx context.Context, id string, patch domain.ListPatch) (*domain.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if patch.Title != nil {
		list.Title = *patch.Title
	}
	if patch.Type != nil {
		list.Type = *patch.Type
	}
	if patch.Genre != nil {
		list.Genre = *patch.Genre
	}
	if patch.Content != nil {
		list.Content = *patch.Content
	}

	r.lists[id] = list
	return &list, nil
}

func (r *memListRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[id]; !ok {
		return nil
	}
	delete(r.lists, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memListRepo) Sample(ctx context.Context, contentType, genre string, size int64) ([]domain.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// draw first, filter second
	drawn := make([]domain.List, 0, size)
	for _, id := range r.order {
		if int64(len(drawn)) == size {
			break
		}
		drawn = append(drawn, r.lists[id])
	}

	var out []domain.List
	for _, list := range drawn {
		if contentType != "" && list.Type != contentType {
			continue
		}
		if genre != "" && list.Genre != genre {
			continue
		}
		out = append(out, list)
	}
	return out, nil
}

var _ repository.ListRepository = (*memListRepo)(nil)

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

const listsCollection = "lists"

type ListRepository struct {
	lists *mongo.Collection
}

func NewListRepository(db *mongo.Database) repository.ListRepository {
	return &ListRepository{lists: db.Collection(listsCollection)}
}

func (r *ListRepository) Create(ctx context.Context, list *domain.List) (string, error) {
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now
	if list.ID.IsZero() {
		list.ID = primitive.NewObjectID()
	}

	if _, err := r.lists.InsertOne(ctx, list); err != nil {
		return "", fmt.Errorf("insert list: %w", err)
	}
	return list.ID.Hex(), nil
}

func (r *ListRepository) GetByID(ctx context.Context, id string) (*domain.List, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var list domain.List
	if err := r.lists.FindOne(ctx, bson.M{"_id": oid}).Decode(&list); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	return &list, nil
}

func (r *ListRepository) Update(ctx context.Context, id string, patch domain.ListPatch) (*domain.List, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Genre != nil {
		set["genre"] = *patch.Genre
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.List
	err = r.lists.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update list: %w", err)
	}
	return &updated, nil
}

func (r *ListRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	if _, err := r.lists.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

func (r *ListRepository) Sample(ctx context.Context, contentType, genre string, size int64) ([]domain.List, error) {
	// $sample runs before $match: the random draw is the product, the
	// filters only narrow it. Swapping the stages would change observable
	// behavior.
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}

	match := bson.M{}
	if contentType != "" {
		match["type"] = contentType
	}
	if genre != "" {
		match["genre"] = genre
	}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	cursor, err := r.lists.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample lists: %w", err)
	}
	defer cursor.Close(ctx)

	var lists []domain.List
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("decode lists: %w", err)
	}
	return lists, nil
}

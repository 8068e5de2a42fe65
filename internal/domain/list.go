package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// List is a curated collection of catalog content, e.g. a themed row of
// movies or series. Content holds references to the items included.
type List struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Type      string             `bson:"type"`
	Genre     string             `bson:"genre"`
	Content   []string           `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// ListPatch carries a partial update; nil fields are left untouched.
type ListPatch struct {
	Title   *string
	Type    *string
	Genre   *string
	Content *[]string
}

// IsEmpty reports whether the patch would change nothing.
func (p ListPatch) IsEmpty() bool {
	return p.Title == nil && p.Type == nil && p.Genre == nil && p.Content == nil
}

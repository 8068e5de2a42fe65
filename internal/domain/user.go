package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account of the catalog. Password holds the
// AES-encrypted credential, never plaintext.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	ProfilePic string             `bson:"profilePic"`
	IsAdmin    bool               `bson:"isAdmin"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Username   *string
	Email      *string
	Password   *string
	ProfilePic *string
	IsAdmin    *bool
	Status     *string
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil &&
		p.ProfilePic == nil && p.IsAdmin == nil && p.Status == nil
}

// MonthlyCount is one row of the user signup stats aggregation:
// calendar month (1..12) and how many accounts were created in it,
// across all years.
type MonthlyCount struct {
	Month int `bson:"_id" json:"_id"`
	Total int `bson:"total" json:"total"`
}

// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents anyone who has interacted with the booking service.
//
// UserID is the stable numeric identity assigned by the chat transport and
// never changes. Username is informational only; it may change or be absent.
// Role membership is carried as two independent flags: a user may be an
// admin, whitelisted, both, or neither (a plain user). Users are never
// deleted, only their flags change.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID     int64              `bson:"user_id" json:"user_id"`
	Username   string             `bson:"username,omitempty" json:"username,omitempty"`
	UsernameCI string             `bson:"username_ci,omitempty" json:"-"` // lowercase, diacritics-stripped

	IsAdmin       bool `bson:"is_admin" json:"is_admin"`
	IsWhitelisted bool `bson:"is_whitelisted" json:"is_whitelisted"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an identity in the directory: admins manage steps,
// users view and complete the steps assigned to them.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"` // lowercase, diacritics-stripped
	Role       string             `bson:"role" json:"role"`     // admin | user

	// PasswordHash is a bcrypt hash. It is never serialized to JSON.
	PasswordHash []byte `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

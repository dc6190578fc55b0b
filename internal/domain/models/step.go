// internal/domain/models/step.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Step is a single onboarding task assigned to one user.
//
// CompletedAt is present exactly when Completed is true; both fields are
// written together in a single update so they can never drift apart.
type Step struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`

	// AssignedTo holds the owning user's username. The user directory and
	// the step collection are managed independently; there is no
	// foreign-key check against the users collection.
	AssignedTo string `bson:"assigned_to" json:"assignedTo"`

	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

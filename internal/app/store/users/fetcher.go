package userstore

import (
	"context"

	"github.com/dalemusser/stephub/internal/app/system/auth"
	"github.com/dalemusser/stephub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher implements auth.UserFetcher, reloading the user record on each
// request so role changes and deletions take effect immediately.
type Fetcher struct {
	store *Store
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

// FetchUser retrieves a user by ID hex and returns nil if the user is gone
// or the ID is malformed, ending the session.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	u, err := f.store.GetByID(ctx, oid)
	if err != nil {
		return nil
	}

	return &auth.SessionUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

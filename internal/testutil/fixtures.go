package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/stephub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a directory user with the given identity and password.
func (f *Fixtures) CreateUser(ctx context.Context, name, username, role, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Username:     username,
		UsernameCI:   text.Fold(username),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin inserts an admin directory user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, username, "admin", "admin-password")
}

// CreateStep inserts a pending step assigned to the given username.
func (f *Fixtures) CreateStep(ctx context.Context, title, assignedTo string) models.Step {
	f.t.Helper()

	step := models.Step{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test step description",
		AssignedTo:  assignedTo,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("steps").InsertOne(ctx, step); err != nil {
		f.t.Fatalf("failed to create test step: %v", err)
	}
	return step
}

// CreateCompletedStep inserts a completed step assigned to the given username.
func (f *Fixtures) CreateCompletedStep(ctx context.Context, title, assignedTo string) models.Step {
	f.t.Helper()

	now := time.Now().UTC()
	step := models.Step{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test step description",
		AssignedTo:  assignedTo,
		Completed:   true,
		CompletedAt: &now,
		CreatedAt:   now,
	}

	if _, err := f.db.Collection("steps").InsertOne(ctx, step); err != nil {
		f.t.Fatalf("failed to create completed test step: %v", err)
	}
	return step
}

// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stephub/internal/app/system/authz"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/normalize"
	"github.com/dalemusser/stephub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// List returns all directory users, sorted by username. Password hashes stay
// in the struct but never reach JSON (the field is tagged json:"-").
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByUsername looks up a user by case-insensitive username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(normalize.Username(username))}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperr.NotFound("user %s not found", username)
		}
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID hex. Used by the session fetcher.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperr.NotFound("user %s not found", id.Hex())
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
// Password may be empty; such accounts cannot sign in until one is set.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Username = normalize.Username(u.Username)
	u.UsernameCI = text.Fold(u.Username)
	u.Role = normalize.Role(u.Role)

	if u.Name == "" {
		return models.User{}, httperr.Validation("name is required")
	}
	if u.Username == "" {
		return models.User{}, httperr.Validation("username is required")
	}
	if !authz.ValidRole(u.Role) {
		return models.User{}, httperr.Validation(`role must be "admin" or "user"`)
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, httperr.Conflict("username %s already exists", u.Username)
		}
		return models.User{}, err
	}
	return u, nil
}

// VerifyPassword checks username/password for login. Both unknown users and
// wrong passwords report the same unauthorized error so the endpoint does not
// reveal which usernames exist.
func (s *Store) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, httperr.Unauthorized("invalid username or password")
		}
		return nil, err
	}
	if len(u.PasswordHash) == 0 {
		return nil, httperr.Unauthorized("invalid username or password")
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, httperr.Unauthorized("invalid username or password")
	}
	return u, nil
}

// SetRole promotes or demotes a user, refreshing updated_at.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	role = normalize.Role(role)
	if !authz.ValidRole(role) {
		return httperr.Validation(`role must be "admin" or "user"`)
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return httperr.NotFound("user %s not found", id.Hex())
	}
	return nil
}

// internal/app/store/steps/stepstore.go
package stepstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/stephub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/normalize"
	"github.com/dalemusser/stephub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("steps")}
}

// Filter narrows List to one assignee. The zero value matches everything.
type Filter struct {
	AssignedTo string
}

// List returns steps matching the filter, oldest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Step, error) {
	q := bson.M{}
	if f.AssignedTo != "" {
		q["assigned_to"] = normalize.Username(f.AssignedTo)
	}

	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var steps []models.Step
	if err := cur.All(ctx, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// Create inserts a new pending step. Title and description are stripped of
// markup before validation so a tag-only field counts as blank.
func (s *Store) Create(ctx context.Context, in models.Step) (models.Step, error) {
	in.Title = htmlsanitize.Strip(in.Title)
	in.Description = htmlsanitize.Strip(in.Description)
	in.AssignedTo = normalize.Username(in.AssignedTo)

	if in.Title == "" {
		return models.Step{}, httperr.Validation("title is required")
	}
	if in.Description == "" {
		return models.Step{}, httperr.Validation("description is required")
	}
	if in.AssignedTo == "" {
		return models.Step{}, httperr.Validation("assignedTo is required")
	}

	in.ID = primitive.NewObjectID()
	in.Completed = false
	in.CompletedAt = nil
	in.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, in); err != nil {
		return models.Step{}, err
	}
	return in, nil
}

// GetByID returns a step by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Step, error) {
	var step models.Step
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&step); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Step{}, httperr.NotFound("step %s not found", id.Hex())
		}
		return models.Step{}, err
	}
	return step, nil
}

// Update holds the mutable step fields. Nil pointers leave a field untouched;
// completion state is not reachable from here (see Complete).
type Update struct {
	Title       *string
	Description *string
	AssignedTo  *string
}

// Update applies a partial edit and returns the updated step.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Step, error) {
	set := bson.M{}

	if upd.Title != nil {
		title := htmlsanitize.Strip(*upd.Title)
		if title == "" {
			return models.Step{}, httperr.Validation("title cannot be blank")
		}
		set["title"] = title
	}
	if upd.Description != nil {
		desc := htmlsanitize.Strip(*upd.Description)
		if desc == "" {
			return models.Step{}, httperr.Validation("description cannot be blank")
		}
		set["description"] = desc
	}
	if upd.AssignedTo != nil {
		assignee := normalize.Username(*upd.AssignedTo)
		if assignee == "" {
			return models.Step{}, httperr.Validation("assignedTo cannot be blank")
		}
		set["assigned_to"] = assignee
	}

	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	var step models.Step
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&step)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Step{}, httperr.NotFound("step %s not found", id.Hex())
		}
		return models.Step{}, err
	}
	return step, nil
}

// Complete marks a step done. The write is a single per-document update, so
// completed and completed_at always change together and concurrent completes
// are last-write-wins with no read-modify-write gap. Completing an already
// completed step succeeds and refreshes completed_at.
func (s *Store) Complete(ctx context.Context, id primitive.ObjectID) (models.Step, error) {
	now := time.Now().UTC()

	var step models.Step
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"completed": true, "completed_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&step)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Step{}, httperr.NotFound("step %s not found", id.Hex())
		}
		return models.Step{}, err
	}
	return step, nil
}

// Delete removes a step permanently.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return httperr.NotFound("step %s not found", id.Hex())
	}
	return nil
}

// ParseID converts a hex path parameter into an ObjectID. A malformed id can
// never name an existing step, so it reports not-found rather than leaking
// encoding details to the caller.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, httperr.NotFound("step %s not found", hex)
	}
	return id, nil
}

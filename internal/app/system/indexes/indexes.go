// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Problems are aggregated so any failure is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureSteps(ctx, db); err != nil {
		problems = append(problems, "steps: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureUsers enforces username uniqueness (folded form) in the directory.
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("uniq_username_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("role"),
		},
	})
	return err
}

// ensureSteps supports the assignee filter and the per-user stats query.
func ensureSteps(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("steps").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "assigned_to", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("assigned_to_created_at"),
		},
		{
			Keys:    bson.D{{Key: "assigned_to", Value: 1}, {Key: "completed", Value: 1}},
			Options: options.Index().SetName("assigned_to_completed"),
		},
	})
	return err
}

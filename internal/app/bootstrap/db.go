// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	userstore "github.com/dalemusser/stephub/internal/app/store/users"
	"github.com/dalemusser/stephub/internal/app/system/authz"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/indexes"
	"github.com/dalemusser/stephub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping
// before the rest of startup proceeds.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates indexes and seeds the bootstrap admin account.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("mongo indexes ensured")

	return ensureBootstrapAdmin(ctx, deps, appCfg, logger)
}

// ensureBootstrapAdmin guarantees at least one admin account exists so a
// fresh deployment can be administered. If the configured username already
// exists it is promoted instead of duplicated. When no admin exists and no
// bootstrap password is configured, seeding is skipped with a warning so
// the app still starts.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	n, err := deps.MongoDatabase.Collection("users").CountDocuments(ctx, bson.M{"role": authz.RoleAdmin})
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	existing, err := users.GetByUsername(ctx, appCfg.BootstrapAdminUsername)
	switch {
	case err == nil:
		if err := users.SetRole(ctx, existing.ID, authz.RoleAdmin); err != nil {
			return fmt.Errorf("promote bootstrap admin: %w", err)
		}
		logger.Info("promoted existing user to admin",
			zap.String("username", existing.Username))
		return nil
	case !isNotFound(err):
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}

	if appCfg.BootstrapAdminPassword == "" {
		logger.Warn("no admin account exists and bootstrap_admin_password is not set; skipping admin seed")
		return nil
	}

	created, err := users.Create(ctx, models.User{
		Name:     "Administrator",
		Username: appCfg.BootstrapAdminUsername,
		Role:     authz.RoleAdmin,
	}, appCfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info("created bootstrap admin",
		zap.String("username", created.Username))
	return nil
}

func isNotFound(err error) bool {
	var he *httperr.Error
	return errors.As(err, &he) && he.Kind == httperr.KindNotFound
}

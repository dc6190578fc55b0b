// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/stephub/internal/app/features/health"
	loginfeature "github.com/dalemusser/stephub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/stephub/internal/app/features/logout"
	stepsfeature "github.com/dalemusser/stephub/internal/app/features/steps"
	userinfofeature "github.com/dalemusser/stephub/internal/app/features/userinfo"
	usersfeature "github.com/dalemusser/stephub/internal/app/features/users"
	userstore "github.com/dalemusser/stephub/internal/app/store/users"
	"github.com/dalemusser/stephub/internal/app/system/auth"
	"github.com/dalemusser/stephub/internal/app/system/requestlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. StepHub applies request logging and
// session middleware globally, then mounts the JSON feature routers: health,
// authentication, the user directory, and the step resource.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request, so role
	// changes and deleted accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	r := chi.NewRouter()

	r.Use(requestlog.Middleware(logger))
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	userinfoHandler := userinfofeature.NewHandler()
	r.Mount("/userinfo", userinfofeature.Routes(userinfoHandler))

	// User directory
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	// Onboarding steps
	stepsHandler := stepsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/steps", stepsfeature.Routes(stepsHandler, sessionMgr))

	return r, nil
}

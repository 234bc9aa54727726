package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	bookingsfeature "github.com/dalemusser/hallbook/internal/app/features/bookings"
	healthfeature "github.com/dalemusser/hallbook/internal/app/features/health"
	loginfeature "github.com/dalemusser/hallbook/internal/app/features/login"
	logoutfeature "github.com/dalemusser/hallbook/internal/app/features/logout"
	rolesfeature "github.com/dalemusser/hallbook/internal/app/features/roles"
	timetablefeature "github.com/dalemusser/hallbook/internal/app/features/timetable"
	"github.com/dalemusser/hallbook/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed, so the scheduler core in deps is
// already hydrated. HallBook applies session middleware and mounts the
// health, operator login, booking, timetable, and role feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Loads the operator session into context when present.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Operator console authentication.
	loginHandler := loginfeature.NewHandler(appCfg.ConsolePasswordHash, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Scheduling API.
	bookingsHandler := bookingsfeature.NewHandler(deps.Core, logger)
	r.Mount("/api/bookings", bookingsfeature.Routes(bookingsHandler))

	timetableHandler := timetablefeature.NewHandler(deps.Core, logger)
	r.Mount("/api/timetable", timetablefeature.Routes(timetableHandler))

	rolesHandler := rolesfeature.NewHandler(deps.Core, deps.Persist.Roles(), logger)
	r.Mount("/api/roles", rolesfeature.Routes(rolesHandler))

	return r, nil
}

// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/account"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/category"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/moderation"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/config"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/constants"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/middleware"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/recipe"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/review"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. Always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. Returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Recipe handles the catalogue, chef authoring, and recipe moderation.
	Recipe *recipe.Handler

	// Review handles reviews and reply threads.
	Review *review.Handler

	// Moderation handles the flag queue.
	Moderation *moderation.Handler

	// Category handles taxonomy curation.
	Category *category.Handler

	// Account handles the administrator account surface.
	Account *account.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Reviews share the /recipes and /chef/recipes prefixes, so their
	// routes register onto the recipe routers before mounting.
	recipePublic := h.Recipe.PublicRoutes()
	h.Review.RegisterPublic(recipePublic)
	r.Mount("/recipes", recipePublic)

	r.Mount("/flags", h.Moderation.ReportRoutes())

	r.Route("/user", func(user chi.Router) {
		user.Mount("/recipes", h.Review.UserRoutes())
	})

	recipeChef := h.Recipe.ChefRoutes()
	h.Review.RegisterChef(recipeChef)
	r.Route("/chef", func(chef chi.Router) {
		chef.Mount("/recipes", recipeChef)
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Mount("/recipes", h.Recipe.AdminRoutes())
		admin.Mount("/reviews", h.Review.AdminRoutes())
		admin.Mount("/flags", h.Moderation.AdminRoutes())
		admin.Mount("/categories", h.Category.AdminRoutes())
		admin.Mount("/users", h.Account.AdminRoutes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

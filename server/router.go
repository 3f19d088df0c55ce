// Package server assembles the HTTP API: middleware stack, route table, and
// the error surfaces for unknown routes and panics. Keeping assembly out of
// main lets tests mount the full router over httptest.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/user/taskdash-go/apperror"
	"github.com/user/taskdash-go/auth"
	"github.com/user/taskdash-go/metrics"
	"github.com/user/taskdash-go/tasks"
)

// Deps carries everything the router needs. Metrics and AuthLimiter are
// optional; tests usually leave them nil.
type Deps struct {
	AuthHandlers *auth.Handlers
	TaskHandlers *tasks.Handlers
	Tokens       *auth.TokenService
	ClientOrigin string
	Metrics      *metrics.Metrics
	AuthLimiter  *RateLimiter
}

// NewRouter builds the chi router with the full middleware stack and all
// routes mounted.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS restricted to the configured client origin. Non-browser tools send
	// no Origin header and are unaffected.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteError(w, r, apperror.NewNotFoundError("Route not found", nil))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		if deps.AuthLimiter != nil {
			r.Use(deps.AuthLimiter.Middleware())
		}
		r.Post("/register", deps.AuthHandlers.HandleRegister())
		r.Post("/login", deps.AuthHandlers.HandleLogin())

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.Tokens))
			r.Get("/me", deps.AuthHandlers.HandleMe())
		})
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(auth.Middleware(deps.Tokens))
		deps.TaskHandlers.RegisterRoutes(r)
	})

	return r
}

// recoverer converts panics into the generic 500 body. The panic value goes
// to the log only.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.Error("panic recovered",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rvr),
				)
				auth.WriteError(w, r, apperror.NewInternalError("Internal Server Error", nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

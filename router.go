package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	// Registers the OpenAPI document served under /swagger.
	_ "github.com/user/tierapi-go/docs"

	"github.com/user/tierapi-go/apperror"
	"github.com/user/tierapi-go/auth"
	"github.com/user/tierapi-go/config"
	"github.com/user/tierapi-go/plans"
	"github.com/user/tierapi-go/tailored"
	"github.com/user/tierapi-go/users"
)

// requestTimeout bounds handler time; the server's write timeout is derived from it.
const requestTimeout = 60 * time.Second

// healthResponse is the body of GET /.
type healthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"Tailored API Response Backend"`
}

// buildHandler wires every service from cfg and returns the root HTTP handler.
// Services are instantiated here and their dependencies injected by hand.
func buildHandler(cfg *config.AppConfig) (chi.Router, error) {
	catalog, err := plans.Load(cfg.Plans.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans catalog: %w", err)
	}

	tokens, err := auth.NewTokenService(
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTAlgorithm,
		cfg.Auth.AccessTokenDuration(),
		auth.WithIssuer(cfg.Auth.Issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	store := users.NewMemoryStore()

	authService, err := auth.NewService(store, tokens, catalog, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	authHandlers := auth.NewHandlers(authService)
	guard := auth.NewGuard(tokens, store)

	tailoredHandlers := tailored.NewHandlers(tailored.NewComposer(catalog, store))

	log.Printf("Plans catalog loaded with tiers %v", catalog.Tiers())
	return newRouter(cfg, authHandlers, guard, tailoredHandlers), nil
}

// newRouter creates the chi router with the global middleware stack and all routes.
func newRouter(cfg *config.AppConfig, authHandlers *auth.Handlers, guard *auth.Guard, tailoredHandlers *tailored.Handlers) chi.Router {
	r := chi.NewRouter()

	// IMPORTANT: Chi requires all middleware to be registered before any routes
	r.Use(middleware.RequestID)               // Add request ID to context
	r.Use(middleware.RealIP)                  // Get real IP from proxy headers
	r.Use(middleware.Logger)                  // Log all requests
	r.Use(middleware.Recoverer)               // Recover from panics
	r.Use(middleware.Timeout(requestTimeout)) // Timeout long-running requests

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panics below this point become the standard JSON 500 body instead of
	// Recoverer's plain-text one.
	r.Use(recoverJSON)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteError(w, r, apperror.NewNotFoundError("not found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteJSON(w, http.StatusMethodNotAllowed, apperror.ErrorResponse{Error: "method not allowed"})
	})

	r.Get("/", handleHealth(cfg.App.Name))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandlers.HandleSignup())
		r.Post("/login", authHandlers.HandleLogin())
	})

	// Tier-scoped routes (protected by the access guard)
	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware)
		tailoredHandlers.RegisterRoutes(r)
	})

	return r
}

// handleHealth godoc
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} main.healthResponse
// @Router / [get]
func handleHealth(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: service})
	}
}

func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				log.Printf("Panic: %+v", rvr)
				auth.WriteError(w, r, apperror.NewInternalError("internal server error", fmt.Errorf("panic: %v", rvr)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

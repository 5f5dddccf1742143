package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/middleware"
)

// Routes lists every endpoint for the startup banner
var Routes = []string{
	"GET  /health",
	"GET  /api/v1/operators",
	"GET  /api/v1/operators/{operator}/game-types",
	"GET  /api/v1/operators/{operator}/game-types/{gameType}/slates",
	"GET  /api/v1/operators/{operator}/game-types/{gameType}/slates/{slateName}/players",
	"GET  /api/v1/operators/{operator}/game-types/{gameType}/slates/{slateName}/players/{playerID}",
	"GET  /api/v1/filters",
	"GET  /api/v1/dashboard",
	"POST /api/v1/dashboard/actions",
}

// NewRouter wires the handler into a chi router with the standard middleware chain
func NewRouter(h *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", h.HealthCheck)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Filter cascade
		r.Get("/operators", h.GetOperators)
		r.Get("/operators/{operator}/game-types", h.GetGameTypes)
		r.Get("/operators/{operator}/game-types/{gameType}/slates", h.GetSlateNames)
		r.Get("/operators/{operator}/game-types/{gameType}/slates/{slateName}/players", h.GetPlayers)
		r.Get("/operators/{operator}/game-types/{gameType}/slates/{slateName}/players/{playerID}", h.GetPlayer)
		r.Get("/filters", h.GetFilters)

		// Dashboard state, carried entirely by the query string
		r.Get("/dashboard", h.GetDashboard)
		r.Post("/dashboard/actions", h.PostAction)
	})

	return r
}

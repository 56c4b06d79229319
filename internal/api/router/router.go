package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/internal/calendar"
	"github.com/isanahealth/practice-api/internal/clients"
	"github.com/isanahealth/practice-api/internal/dashboard"
	"github.com/isanahealth/practice-api/internal/documents"
	httpmiddleware "github.com/isanahealth/practice-api/internal/http/middleware"
	"github.com/isanahealth/practice-api/internal/observability/metrics"
	"github.com/isanahealth/practice-api/internal/reminders"
	"github.com/isanahealth/practice-api/internal/sessions"
	"github.com/isanahealth/practice-api/internal/uistate"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	TokenVerifier    httpmiddleware.TokenVerifier
	SessionStore     httpmiddleware.SessionStore
	AuthHandler      *auth.Handler
	ClientsHandler   *clients.Handler
	SessionsHandler  *sessions.Handler
	RemindersHandler *reminders.Handler
	DocumentsHandler *documents.Handler
	CalendarHandler  *calendar.Handler
	DashboardHandler *dashboard.Handler
	UIStateHandler   *uistate.Handler
	Metrics          *metrics.StoreMetrics
	MetricsHandler   http.Handler

	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		r.Use(httpmiddleware.Metrics(cfg.Metrics))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.AuthHandler != nil {
			public.Route("/auth", func(r chi.Router) {
				r.Post("/sign-in", cfg.AuthHandler.SignIn)
				r.Post("/reset-password", cfg.AuthHandler.ResetPassword)
				r.Post("/reset-password/complete", cfg.AuthHandler.CompleteReset)
			})
		}
	})

	// Protected API
	r.Route("/api", func(api chi.Router) {
		if cfg.TokenVerifier != nil {
			api.Use(httpmiddleware.Auth(cfg.TokenVerifier))
		}
		if cfg.SessionStore != nil {
			api.Use(httpmiddleware.Session(cfg.SessionStore))
		}

		if cfg.AuthHandler != nil {
			api.Post("/auth/sign-out", cfg.AuthHandler.SignOut)
			api.Get("/auth/me", cfg.AuthHandler.Me)
			api.Post("/auth/change-password", cfg.AuthHandler.ChangePassword)
		}

		if cfg.ClientsHandler != nil {
			api.Route("/clients", func(r chi.Router) {
				r.Get("/", cfg.ClientsHandler.List)
				r.Post("/", cfg.ClientsHandler.Create)
				r.Get("/{clientID}", cfg.ClientsHandler.Get)
				r.Patch("/{clientID}", cfg.ClientsHandler.Update)
				r.Delete("/{clientID}", cfg.ClientsHandler.Delete)
			})
		}

		if cfg.SessionsHandler != nil {
			api.Route("/sessions", func(r chi.Router) {
				r.Get("/", cfg.SessionsHandler.List)
				r.Post("/", cfg.SessionsHandler.Create)
				r.Get("/notes/template", cfg.SessionsHandler.NotesTemplate)
				r.Get("/notes/search", cfg.SessionsHandler.SearchNotes)
				r.Get("/{sessionID}", cfg.SessionsHandler.Get)
				r.Patch("/{sessionID}", cfg.SessionsHandler.Update)
				r.Delete("/{sessionID}", cfg.SessionsHandler.Delete)
			})
		}

		if cfg.RemindersHandler != nil {
			api.Route("/reminders", func(r chi.Router) {
				r.Get("/", cfg.RemindersHandler.List)
				r.Post("/", cfg.RemindersHandler.Create)
				r.Patch("/{reminderID}", cfg.RemindersHandler.Update)
				r.Delete("/{reminderID}", cfg.RemindersHandler.Delete)
			})
		}

		if cfg.DocumentsHandler != nil {
			api.Route("/documents", func(r chi.Router) {
				r.Get("/", cfg.DocumentsHandler.List)
				r.Post("/", cfg.DocumentsHandler.Upload)
				r.Delete("/{documentID}", cfg.DocumentsHandler.Delete)
			})
		}

		if cfg.CalendarHandler != nil {
			api.Route("/calendar", func(r chi.Router) {
				r.Get("/events", cfg.CalendarHandler.ListEvents)
				r.Post("/events", cfg.CalendarHandler.CreateEvent)
				r.Patch("/events/{eventID}", cfg.CalendarHandler.UpdateEvent)
				r.Delete("/events/{eventID}", cfg.CalendarHandler.DeleteEvent)
				r.Get("/slots", cfg.CalendarHandler.AvailableSlots)
			})
		}

		if cfg.DashboardHandler != nil {
			api.Get("/dashboard/stats", cfg.DashboardHandler.GetStats)
		}

		if cfg.UIStateHandler != nil {
			api.Route("/ui-state", func(r chi.Router) {
				r.Get("/", cfg.UIStateHandler.Get)
				r.Patch("/", cfg.UIStateHandler.Update)
				r.Delete("/", cfg.UIStateHandler.Clear)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

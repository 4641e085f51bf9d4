package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lumident/dental-clinic-platform/internal/chat"
	"github.com/lumident/dental-clinic-platform/internal/contact"
	httpmiddleware "github.com/lumident/dental-clinic-platform/internal/http/middleware"
	"github.com/lumident/dental-clinic-platform/internal/leads"
	"github.com/lumident/dental-clinic-platform/internal/testimonials"
	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	LeadsHandler        *leads.Handler
	ChatHandler         *chat.Handler
	TestimonialsHandler *testimonials.Handler
	ContactHandler      *contact.Handler
	MetricsHandler      http.Handler
	AdminAuthSecret     string
	CORSAllowedOrigins  []string
	RateLimitPerSecond  float64
	RateLimitBurst      int
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

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
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.LeadsHandler != nil {
			api.Post("/leads/intake", cfg.LeadsHandler.Intake)
		}
		if cfg.ChatHandler != nil {
			api.Post("/chat", cfg.ChatHandler.Relay)
			api.Get("/chat/history", cfg.ChatHandler.History)
		}
		if cfg.TestimonialsHandler != nil {
			api.Get("/testimonials", cfg.TestimonialsHandler.List)
			api.Post("/testimonials", cfg.TestimonialsHandler.Create)
		}
		if cfg.ContactHandler != nil {
			api.Post("/contact", cfg.ContactHandler.Create)
		}
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
		if cfg.TestimonialsHandler != nil {
			admin.Get("/testimonials", cfg.TestimonialsHandler.AdminList)
			admin.Post("/testimonials/{id}/approve", cfg.TestimonialsHandler.Approve)
		}
		if cfg.ContactHandler != nil {
			admin.Get("/contact", cfg.ContactHandler.AdminList)
			admin.Post("/contact/{id}/read", cfg.ContactHandler.MarkRead)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

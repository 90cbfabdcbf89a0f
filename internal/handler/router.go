package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/metrics"
)

// Router assembles the HTTP surface: the JSON API, the dashboard, the
// health check, and the metrics endpoint.
type Router struct {
	users       *UserHandler
	dashboard   *DashboardHandler
	metrics     *metrics.Metrics
	metricsPath string
	logger      zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	Users *UserHandler

	// Dashboard may be nil to disable the HTML page.
	Dashboard *DashboardHandler

	// Metrics may be nil to disable the metrics endpoint and collection.
	Metrics     *metrics.Metrics
	MetricsPath string

	Logger zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(cfg RouterConfig) *Router {
	path := cfg.MetricsPath
	if path == "" {
		path = "/metrics"
	}
	return &Router{
		users:       cfg.Users,
		dashboard:   cfg.Dashboard,
		metrics:     cfg.Metrics,
		metricsPath: path,
		logger:      cfg.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(rt.logger))
	if rt.metrics != nil {
		r.Use(RequestMetrics(rt.metrics))
	}

	r.Get("/health", rt.handleHealth)
	if rt.metrics != nil {
		r.Method(http.MethodGet, rt.metricsPath, rt.metrics.Handler())
	}

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", rt.users.List)
		r.Post("/", rt.users.Create)
		r.Get("/{id}", rt.users.Get)
		r.Put("/{id}", rt.users.Update)
		r.Delete("/{id}", rt.users.Delete)
	})

	if rt.dashboard != nil {
		r.Get("/dashboard", rt.dashboard.ServeHTTP)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		})
	}

	return r
}

// handleHealth handles health check requests.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

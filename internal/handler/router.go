package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/metrics"
	"github.com/prn-tf/coursebook/internal/repository"
)

// Router assembles the HTTP surface of the Coursebook API.
type Router struct {
	userHandler   *UserHandler
	courseHandler *CourseHandler
	dbHealth      repository.DatabaseHealth
	metrics       *metrics.Metrics
	metricsPath   string
	logStacks     bool
	logger        zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	UserHandler    *UserHandler
	CourseHandler  *CourseHandler
	DBHealth       repository.DatabaseHealth
	Metrics        *metrics.Metrics // nil disables instrumentation
	MetricsPath    string
	LogStackTraces bool
	Logger         zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		userHandler:   config.UserHandler,
		courseHandler: config.CourseHandler,
		dbHealth:      config.DBHealth,
		metrics:       config.Metrics,
		metricsPath:   config.MetricsPath,
		logStacks:     config.LogStackTraces,
		logger:        config.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(rt.logger))
	r.Use(Recoverer(rt.logger, rt.logStacks))
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}

	r.Get("/", rt.handleGreeting)
	r.Get("/health", rt.handleHealth)

	if rt.metrics != nil && rt.metricsPath != "" {
		r.Method(http.MethodGet, rt.metricsPath, rt.metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		rt.userHandler.RegisterRoutes(api)
		rt.courseHandler.RegisterRoutes(api)
	})

	r.NotFound(rt.handleNotFound)
	r.MethodNotAllowed(rt.handleNotFound)

	return r
}

// handleGreeting responds to the root path.
func (rt *Router) handleGreeting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, errorResponse{Message: "Welcome to the REST API project!"})
}

// handleHealth reports liveness, including datastore reachability.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	if rt.dbHealth != nil {
		if err := rt.dbHealth.Health(r.Context()); err != nil {
			rt.logger.Error().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleNotFound covers unmatched routes and methods alike.
func (rt *Router) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Message: "Route Not Found"})
}

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"complypath/internal/api/handlers"
	apimiddleware "complypath/internal/api/middleware"
	"complypath/internal/config"
	"complypath/internal/infrastructure/cache"
	"complypath/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	registry *prometheus.Registry
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, reg *prometheus.Registry, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		registry: reg,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Metrics
	metrics := apimiddleware.NewMetrics(r.registry)
	router.Use(metrics.Handler)

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)
		pub.Method("GET", "/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	})

	// API v1 routes (authenticated)
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.BearerAuth(r.config.Auth.APIToken))

		// Stateless roadmap generation
		api.Post("/roadmap/preview", r.handlers.Assessments.Preview)

		// Assessment endpoints
		api.Route("/assessments", func(assessments chi.Router) {
			assessments.Post("/", r.handlers.Assessments.Create)
			assessments.Get("/", r.handlers.Assessments.List)

			assessments.Route("/{id}", func(one chi.Router) {
				one.Get("/", r.handlers.Assessments.Get)
				one.Delete("/", r.handlers.Assessments.Delete)
				one.Get("/roadmap", r.handlers.Assessments.GetRoadmap)
				one.Get("/vendors", r.handlers.Vendors.ListForAssessment)

				// Task completion is caller state layered over the
				// immutable generated roadmap
				one.Put("/tasks/{taskID}/complete", r.handlers.Assessments.CompleteTask)
				one.Delete("/tasks/{taskID}/complete", r.handlers.Assessments.UncompleteTask)
			})
		})
	})

	return router
}

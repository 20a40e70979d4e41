package rest

import (
	"net/http"
	"net/netip"

	"portfolio/application/services"
	"portfolio/docs/swagger"
	"portfolio/interfaces/http/rest/handlers"
	"portfolio/interfaces/http/rest/middleware"
	pkgerrors "portfolio/pkg/errors"
	"portfolio/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Router creates and configures the HTTP router
type Router struct {
	projects     *services.ProjectService
	testimonials *services.TestimonialService
	auth         *services.AuthService
	integrations *services.IntegrationService
	metrics      *observability.Collector
	errHandler   *pkgerrors.ErrorHandler
	corsOrigins  []string
	proxies      []netip.Prefix
	cookie       handlers.CookieOptions
	logger       *zap.Logger
}

// RouterOptions carries the HTTP-facing settings taken from config
type RouterOptions struct {
	CORSOrigins    []string
	TrustedProxies []netip.Prefix
	Cookie         handlers.CookieOptions
	Debug          bool
}

// NewRouter creates a new router instance. metrics may be nil.
func NewRouter(
	projects *services.ProjectService,
	testimonials *services.TestimonialService,
	authService *services.AuthService,
	integrations *services.IntegrationService,
	metrics *observability.Collector,
	opts RouterOptions,
	logger *zap.Logger,
) *Router {
	return &Router{
		projects:     projects,
		testimonials: testimonials,
		auth:         authService,
		integrations: integrations,
		metrics:      metrics,
		errHandler:   pkgerrors.NewErrorHandler(logger, opts.Debug),
		corsOrigins:  opts.CORSOrigins,
		proxies:      opts.TrustedProxies,
		cookie:       opts.Cookie,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RealIP(rt.proxies))
	router.Use(observability.TracingMiddleware)
	router.Use(rt.errHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(rt.metrics.Middleware)
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errHandler.HandleStatus(w, r, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	requireAdmin := middleware.RequireAdmin(rt.auth, rt.errHandler)

	router.Route("/api", func(r chi.Router) {
		r.Route("/projects", handlers.NewProjectHandler(rt.projects, rt.errHandler, rt.logger).Routes(requireAdmin))
		r.Route("/testimonials", handlers.NewTestimonialHandler(rt.testimonials, rt.errHandler, rt.logger).Routes(requireAdmin))

		authHandler := handlers.NewAuthHandler(rt.auth, rt.cookie, rt.errHandler, rt.logger)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/verify", authHandler.Verify)
		})

		r.Get("/docs/doc.json", rt.apiDocs)

		integrationHandler := handlers.NewIntegrationHandler(rt.integrations, rt.errHandler, rt.logger)
		r.Get("/github/repos", integrationHandler.GitHubRepos)
		r.Get("/leetcode/stats", integrationHandler.LeetCodeStats)
		r.With(requireAdmin).Post("/integrations/refresh", integrationHandler.Refresh)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// apiDocs serves the OpenAPI document
func (rt *Router) apiDocs(w http.ResponseWriter, req *http.Request) {
	doc, err := swag.ReadDoc(swagger.SwaggerInfo.InstanceName())
	if err != nil {
		rt.errHandler.Handle(w, req, pkgerrors.NewInternalError("API docs unavailable").WithCause(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// readinessCheck reports ready once both collections can be read
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	g, ctx := errgroup.WithContext(req.Context())
	g.Go(func() error {
		_, err := rt.projects.List(ctx, false)
		return err
	})
	g.Go(func() error {
		_, err := rt.testimonials.List(ctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		rt.logger.Warn("Readiness check failed", zap.Error(err))
		rt.errHandler.HandleStatus(w, req, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

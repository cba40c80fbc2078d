package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/commands/bus"
	querybus "github.com/anxornot/QuickQanava/application/queries/bus"
	"github.com/anxornot/QuickQanava/application/services"
	"github.com/anxornot/QuickQanava/infrastructure/config"
	"github.com/anxornot/QuickQanava/interfaces/http/rest/handlers"
	"github.com/anxornot/QuickQanava/interfaces/http/rest/middleware"
	"github.com/anxornot/QuickQanava/pkg/auth"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	observers  *services.ObserverService
	metrics    *observability.Metrics
	validator  *auth.JWTValidator
	limiter    *auth.TokenBucketLimiter
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	observers *services.ObserverService,
	metrics *observability.Metrics,
	validator *auth.JWTValidator,
	limiter *auth.TokenBucketLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		observers:  observers,
		metrics:    metrics,
		validator:  validator,
		limiter:    limiter,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	errorHandler := errors.NewErrorHandler(rt.logger, rt.cfg.Environment != "production")

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.limiter, rt.logger))
		r.Use(middleware.Logger(rt.logger))
		if rt.cfg.EnableMetrics {
			r.Use(middleware.Metrics(rt.metrics))
		}

		// Node endpoints
		r.Route("/nodes", func(r chi.Router) {
			nodeHandler := handlers.NewNodeHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)
			r.Post("/", nodeHandler.CreateNode)
			r.Get("/", nodeHandler.ListNodes)
			r.Get("/{nodeID}", nodeHandler.GetNode)
			r.Put("/{nodeID}/label", nodeHandler.SetNodeLabel)
			r.Delete("/{nodeID}", nodeHandler.DeleteNode)
		})

		// Edge endpoints
		r.Route("/edges", func(r chi.Router) {
			edgeHandler := handlers.NewEdgeHandler(rt.commandBus, errorHandler, rt.logger)
			r.Post("/", edgeHandler.CreateEdge)
			r.Delete("/{edgeID}", edgeHandler.DeleteEdge)
		})

		// Group endpoints
		r.Route("/groups", func(r chi.Router) {
			groupHandler := handlers.NewGroupHandler(rt.commandBus, errorHandler, rt.logger)
			r.Post("/", groupHandler.CreateGroup)
			r.Delete("/{groupID}", groupHandler.DeleteGroup)
			r.Put("/{groupID}/label", groupHandler.SetGroupLabel)
			r.Put("/{groupID}/nodes/{nodeID}", groupHandler.GroupNode)
			r.Delete("/{groupID}/nodes/{nodeID}", groupHandler.UngroupNode)
		})

		// Graph-level endpoints
		graphHandler := handlers.NewGraphHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)
		r.Get("/graph", graphHandler.GetGraphData)
		r.Get("/graph/stats", graphHandler.GetGraphStats)
		r.Delete("/graph", graphHandler.ClearGraph)

		// Observer management endpoints
		r.Route("/observers", func(r chi.Router) {
			observerHandler := handlers.NewObserverHandler(rt.observers, errorHandler, rt.logger)
			r.Post("/", observerHandler.AttachObserver)
			r.Get("/", observerHandler.ListObservers)
			r.Delete("/{name}", observerHandler.DetachObserver)
			r.Post("/{name}/enable", observerHandler.EnableObserver)
			r.Post("/{name}/disable", observerHandler.DisableObserver)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/commands"
	"github.com/anxornot/QuickQanava/application/commands/bus"
	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/application/queries"
	querybus "github.com/anxornot/QuickQanava/application/queries/bus"
	"github.com/anxornot/QuickQanava/application/services"
	domaincfg "github.com/anxornot/QuickQanava/domain/config"
	"github.com/anxornot/QuickQanava/infrastructure/config"
	"github.com/anxornot/QuickQanava/infrastructure/messaging"
	"github.com/anxornot/QuickQanava/infrastructure/persistence/memory"
	"github.com/anxornot/QuickQanava/pkg/auth"
	"github.com/anxornot/QuickQanava/pkg/observability"
)

// ProvideLogger creates a zap logger for the configured environment
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}

// ProvideLimitsWatcher starts the hot-reloading limits watcher when a
// limits file is configured, or returns nil to use static limits
func ProvideLimitsWatcher(cfg *config.Config, logger *zap.Logger) (*config.LimitsWatcher, error) {
	if cfg.LimitsFile == "" {
		return nil, nil
	}

	watcher, err := config.NewLimitsWatcher(cfg.LimitsFile, domaincfg.LoadDomainConfig(cfg.Environment), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create limits watcher: %w", err)
	}
	watcher.Start()

	return watcher, nil
}

// ProvideLimitsProvider exposes the current topology limits, live when a
// watcher is running and fixed per environment otherwise
func ProvideLimitsProvider(cfg *config.Config, watcher *config.LimitsWatcher) memory.LimitsProvider {
	if watcher != nil {
		return watcher.GetLimits
	}

	limits := domaincfg.LoadDomainConfig(cfg.Environment)
	return func() domaincfg.DomainConfig { return limits }
}

// ProvideGraphRepository creates the in-memory graph repository
func ProvideGraphRepository(limits memory.LimitsProvider, logger *zap.Logger) ports.GraphRepository {
	return memory.NewGraphRepository(limits, logger)
}

// ProvideEventBus creates the in-process event dispatcher
func ProvideEventBus(logger *zap.Logger) ports.EventBus {
	return messaging.NewEventDispatcher(logger)
}

// ProvideMetrics creates the Prometheus collectors
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// ProvideObserverService creates the observer management service
func ProvideObserverService(graphRepo ports.GraphRepository, metrics *observability.Metrics, logger *zap.Logger) *services.ObserverService {
	return services.NewObserverService(graphRepo, metrics, logger)
}

// ProvideRateLimiter creates the per-caller request limiter
func ProvideRateLimiter(cfg *config.Config) *auth.TokenBucketLimiter {
	return auth.NewTokenBucketLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) *auth.JWTValidator {
	return auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer, 24*time.Hour)
}

// ProvideInMemoryCache creates the in-memory query cache
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideCommandBus creates the command bus with all mutation handlers
// registered behind the logging and metrics middleware
func ProvideCommandBus(
	graphRepo ports.GraphRepository,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()
	pipeline := bus.NewPipeline(
		bus.LoggingMiddleware(&zapLoggerAdapter{logger: logger}),
		bus.MetricsMiddleware(metrics),
	)

	groupHandler := commands.NewGroupHandler(graphRepo, eventBus, logger)
	labelHandler := commands.NewLabelHandler(graphRepo, logger)

	registrations := []struct {
		command bus.Command
		handler bus.CommandHandler
	}{
		{commands.InsertNodeCommand{}, commands.NewInsertNodeHandler(graphRepo, eventBus, logger)},
		{commands.RemoveNodeCommand{}, commands.NewRemoveNodeHandler(graphRepo, eventBus, logger)},
		{commands.InsertEdgeCommand{}, commands.NewInsertEdgeHandler(graphRepo, eventBus, logger)},
		{commands.RemoveEdgeCommand{}, commands.NewRemoveEdgeHandler(graphRepo, eventBus, logger)},
		{commands.InsertGroupCommand{}, groupHandler},
		{commands.RemoveGroupCommand{}, groupHandler},
		{commands.GroupNodeCommand{}, groupHandler},
		{commands.UngroupNodeCommand{}, groupHandler},
		{commands.SetNodeLabelCommand{}, labelHandler},
		{commands.SetGroupLabelCommand{}, labelHandler},
		{commands.ClearGraphCommand{}, commands.NewClearGraphHandler(graphRepo, eventBus, logger)},
	}

	for _, r := range registrations {
		if err := commandBus.Register(r.command, pipeline.Execute(r.handler)); err != nil {
			return nil, fmt.Errorf("failed to register command handler: %w", err)
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates the query bus with all read handlers
// registered. Graph statistics are served through the cache since they
// tolerate short staleness; entity reads always hit the repository.
func ProvideQueryBus(
	graphRepo ports.GraphRepository,
	cache ports.Cache,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	withMetrics := querybus.MetricsMiddleware(metrics)
	caching := querybus.NewCachingMiddleware(cache, cfg.CacheTTLSeconds)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetNodeQuery{}, withMetrics(queries.NewGetNodeHandler(graphRepo, logger))},
		{queries.GetGraphDataQuery{}, withMetrics(queries.NewGetGraphDataHandler(graphRepo, logger))},
		{queries.ListNodesQuery{}, withMetrics(queries.NewListNodesHandler(graphRepo, logger))},
		{queries.GetGraphStatsQuery{}, withMetrics(caching.Wrap(queries.NewGetGraphStatsHandler(graphRepo, logger)))},
	}

	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, fmt.Errorf("failed to register query handler: %w", err)
		}
	}

	return queryBus, nil
}

// zapLoggerAdapter adapts zap to the command bus logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, toZapFields(keysAndValues)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, toZapFields(keysAndValues)...)
}

func toZapFields(keysAndValues []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

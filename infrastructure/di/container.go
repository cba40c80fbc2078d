package di

import (
	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/commands/bus"
	"github.com/anxornot/QuickQanava/application/ports"
	querybus "github.com/anxornot/QuickQanava/application/queries/bus"
	"github.com/anxornot/QuickQanava/application/services"
	"github.com/anxornot/QuickQanava/infrastructure/config"
	"github.com/anxornot/QuickQanava/pkg/auth"
	"github.com/anxornot/QuickQanava/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	LimitsWatcher *config.LimitsWatcher
	GraphRepo     ports.GraphRepository
	EventBus      ports.EventBus
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	Cache         ports.Cache
	Metrics       *observability.Metrics
	Observers     *services.ObserverService
	RateLimiter   *auth.TokenBucketLimiter
	JWTValidator  *auth.JWTValidator
}

// Close releases background resources held by the container
func (c *Container) Close() {
	if c.LimitsWatcher != nil {
		c.LimitsWatcher.Stop()
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
}

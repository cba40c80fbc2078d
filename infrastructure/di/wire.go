//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/anxornot/QuickQanava/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideLimitsWatcher,
	ProvideLimitsProvider,
	ProvideGraphRepository,
	ProvideEventBus,
	ProvideMetrics,
	ProvideObserverService,
	ProvideRateLimiter,
	ProvideJWTValidator,
	ProvideInMemoryCache,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}

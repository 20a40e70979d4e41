//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"portfolio/application/ports"
	"portfolio/infrastructure/cache"
	"portfolio/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideTracerProvider,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideCollector,
	ProvideTagCache,
	wire.Bind(new(ports.Cache), new(*cache.TagCache)),
	ProvideProjectStore,
	ProvideTestimonialStore,
	ProvideEventPublisher,
	ProvideCommandRecorder,
	ProvideProjectService,
	ProvideTestimonialService,
	ProvideAuthService,
	ProvideHTTPClient,
	ProvideRepositorySource,
	ProvideStatsSource,
	ProvideIntegrationService,
	ProvideWatcher,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container. The returned
// cleanup stops background workers in reverse order of creation.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}

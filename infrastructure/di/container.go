package di

import (
	"portfolio/application/services"
	"portfolio/infrastructure/cache"
	"portfolio/infrastructure/config"
	"portfolio/infrastructure/persistence/filestore"
	"portfolio/interfaces/http/rest"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Container holds all application dependencies. Background workers are
// stopped by the cleanup InitializeContainer returns, not by the container.
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	TracerProvider trace.TracerProvider
	Cache          *cache.TagCache
	Watcher        *filestore.Watcher
	Projects       *services.ProjectService
	Testimonials   *services.TestimonialService
	Router         *rest.Router
}

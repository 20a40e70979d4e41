package di

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"portfolio/application/ports"
	"portfolio/application/services"
	"portfolio/domain/entities"
	"portfolio/infrastructure/cache"
	"portfolio/infrastructure/config"
	"portfolio/infrastructure/external"
	"portfolio/infrastructure/external/github"
	"portfolio/infrastructure/external/leetcode"
	"portfolio/infrastructure/messaging/eventbridge"
	"portfolio/infrastructure/persistence/dynamodb"
	"portfolio/infrastructure/persistence/filestore"
	"portfolio/infrastructure/persistence/memory"
	"portfolio/interfaces/http/rest"
	"portfolio/interfaces/http/rest/handlers"
	"portfolio/pkg/auth"
	"portfolio/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// cacheCleanupInterval is how often expired cache entries are swept
const cacheCleanupInterval = time.Minute

// ProvideLogger creates a new logger instance honoring LOG_LEVEL. The
// cleanup flushes buffered entries.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		zapCfg.Level = level
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// tracerShutdownTimeout bounds the final span flush
const tracerShutdownTimeout = 5 * time.Second

// ProvideTracerProvider installs OTLP tracing when ENABLE_TRACING is set.
// Otherwise the global no-op provider is returned.
func ProvideTracerProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (trace.TracerProvider, func(), error) {
	tp, shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.EnableTracing,
		ServiceName: "portfolio-api",
		Environment: cfg.Environment,
		Endpoint:    cfg.TracingEndpoint,
		SampleRate:  cfg.TracingSampleRate,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if cfg.EnableTracing {
		logger.Info("Tracing enabled",
			zap.String("endpoint", cfg.TracingEndpoint),
			zap.Float64("sample_rate", cfg.TracingSampleRate),
		)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	return tp, cleanup, nil
}

// ProvideAWSConfig creates AWS configuration. With ENABLE_XRAY every SDK
// call is recorded as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return awsCfg, err
	}
	if cfg.EnableXRay {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideCollector creates the Prometheus collector served on /metrics
func ProvideCollector(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(strings.ToLower(cfg.MetricsNamespace))
}

// ProvideTagCache creates the read cache shared by every service. The
// cleanup stops its sweeper.
func ProvideTagCache(collector *observability.Collector, logger *zap.Logger) (*cache.TagCache, func()) {
	tagCache := cache.NewTagCache(cacheCleanupInterval, collector, logger)
	return tagCache, tagCache.Close
}

func provideStore[T any](cfg *config.Config, client *awsdynamodb.Client, name string, logger *zap.Logger) (ports.DocumentStore[T], error) {
	switch cfg.StoreDriver {
	case config.StoreFile:
		return filestore.NewDocumentStore[T](cfg.DataDir, name, logger), nil
	case config.StoreDynamoDB:
		return dynamodb.NewDocumentStore[T](client, cfg.DynamoDBTable, name, logger), nil
	case config.StoreMemory:
		return memory.NewDocumentStore[T](name), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// ProvideProjectStore creates the projects document store
func ProvideProjectStore(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) (ports.DocumentStore[entities.Project], error) {
	return provideStore[entities.Project](cfg, client, services.ProjectsCollection, logger)
}

// ProvideTestimonialStore creates the testimonials document store
func ProvideTestimonialStore(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) (ports.DocumentStore[entities.Testimonial], error) {
	return provideStore[entities.Testimonial](cfg, client, services.TestimonialsCollection, logger)
}

// ProvideEventPublisher publishes to EventBridge when a bus is configured
// and only logs events otherwise
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return eventbridge.NewLogPublisher(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideCommandRecorder always feeds Prometheus and adds CloudWatch when
// ENABLE_METRICS is set
func ProvideCommandRecorder(
	cfg *config.Config,
	collector *observability.Collector,
	client *awscloudwatch.Client,
	logger *zap.Logger,
) ports.CommandRecorder {
	recorders := observability.MultiRecorder{collector}
	if cfg.EnableMetrics {
		recorders = append(recorders, observability.NewMetrics(cfg.MetricsNamespace, client, logger))
	}
	return recorders
}

// ProvideProjectService creates the project service
func ProvideProjectService(
	store ports.DocumentStore[entities.Project],
	tagCache ports.Cache,
	publisher ports.EventPublisher,
	recorder ports.CommandRecorder,
	cfg *config.Config,
	logger *zap.Logger,
) *services.ProjectService {
	return services.NewProjectService(store, tagCache, cfg.CacheTTL, publisher, recorder, logger)
}

// ProvideTestimonialService creates the testimonial service
func ProvideTestimonialService(
	store ports.DocumentStore[entities.Testimonial],
	tagCache ports.Cache,
	publisher ports.EventPublisher,
	recorder ports.CommandRecorder,
	cfg *config.Config,
	logger *zap.Logger,
) *services.TestimonialService {
	return services.NewTestimonialService(store, tagCache, cfg.CacheTTL, publisher, recorder, logger)
}

// ProvideAuthService creates the admin auth service
func ProvideAuthService(cfg *config.Config, logger *zap.Logger) (*services.AuthService, error) {
	jwtCfg := auth.JWTConfig{
		SecretKey:  cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		ExpiryTime: cfg.JWTExpiresIn,
	}
	if cfg.JWTAudience != "" {
		jwtCfg.Audience = []string{cfg.JWTAudience}
	}

	generator, err := auth.NewJWTGenerator(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token generator: %w", err)
	}
	validator, err := auth.NewJWTValidator(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token validator: %w", err)
	}

	var limiter auth.RateLimiter
	if cfg.LoginRateLimit > 0 {
		limiter = auth.NewLoginRateLimiter(cfg.LoginRateLimit)
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		logger.Warn("Admin credentials not configured, all logins will be rejected")
	}

	return services.NewAuthService(
		auth.NewAdminCredentials(cfg.AdminUsername, cfg.AdminPassword),
		generator,
		validator,
		limiter,
		logger,
	), nil
}

// ProvideHTTPClient creates the client shared by the integrations
func ProvideHTTPClient() *http.Client {
	return &http.Client{Timeout: external.DefaultTimeout}
}

// ProvideRepositorySource returns nil when GITHUB_USERNAME is unset
func ProvideRepositorySource(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) ports.RepositorySource {
	if cfg.GitHubUsername == "" {
		return nil
	}
	return github.NewClient(github.DefaultBaseURL, cfg.GitHubUsername, cfg.GitHubToken, httpClient, logger)
}

// ProvideStatsSource returns nil when LEETCODE_USERNAME is unset
func ProvideStatsSource(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) ports.StatsSource {
	if cfg.LeetCodeUsername == "" {
		return nil
	}
	return leetcode.NewClient(leetcode.DefaultEndpoint, cfg.LeetCodeUsername, httpClient, logger)
}

// ProvideIntegrationService creates the integration service
func ProvideIntegrationService(
	repos ports.RepositorySource,
	stats ports.StatsSource,
	tagCache ports.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) *services.IntegrationService {
	return services.NewIntegrationService(repos, stats, tagCache, cfg.CacheTTL, logger)
}

// ProvideWatcher starts a data file watcher for the file store when
// WATCH_DATA_FILES is set. It returns nil otherwise. The cleanup stops the
// watch goroutine.
func ProvideWatcher(cfg *config.Config, tagCache ports.Cache, logger *zap.Logger) (*filestore.Watcher, func(), error) {
	if cfg.StoreDriver != config.StoreFile || !cfg.WatchDataFiles {
		return nil, func() {}, nil
	}

	files := map[string][]string{}
	for _, name := range []string{services.ProjectsCollection, services.TestimonialsCollection} {
		files[name+".json"] = []string{name, services.FeaturedTag(name)}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	watcher, err := filestore.NewWatcher(cfg.DataDir, files, tagCache, logger)
	if err != nil {
		return nil, nil, err
	}
	watcher.Start()
	return watcher, watcher.Stop, nil
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	projects *services.ProjectService,
	testimonials *services.TestimonialService,
	authService *services.AuthService,
	integrations *services.IntegrationService,
	collector *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(projects, testimonials, authService, integrations, collector, rest.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Cookie:         handlers.CookieOptionsFor(cfg.Environment),
		Debug:          cfg.IsDevelopment(),
	}, logger)
}

package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"portfolio/pkg/utils"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreFile     = "file"
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

const devJWTSecret = "insecure-development-secret"

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	CORSOrigins   []string

	// Proxies whose X-Forwarded-For / X-Real-IP headers are believed.
	// Empty means the socket address is always the client address.
	TrustedProxies []netip.Prefix

	// Record store
	StoreDriver    string
	DataDir        string
	WatchDataFiles bool
	CacheTTL       time.Duration

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Logging
	LogLevel string

	// Authentication
	AdminUsername  string
	AdminPassword  string
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	JWTExpiresIn   time.Duration
	LoginRateLimit int

	// Integrations
	GitHubUsername   string
	GitHubToken      string
	LeetCodeUsername string

	// Metrics
	EnableMetrics    bool
	MetricsNamespace string

	// Tracing
	EnableTracing     bool
	TracingEndpoint   string
	TracingSampleRate float64
	EnableXRay        bool
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables take precedence over it.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	lifetime, err := utils.ParseLifetime(getEnv("JWT_EXPIRES_IN", "1d"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	proxies, err := parseProxies(getEnv("TRUSTED_PROXIES", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGIN", "http://localhost:3000")),

		TrustedProxies: proxies,

		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreFile)),
		DataDir:        getEnv("DATA_DIR", "data"),
		WatchDataFiles: getEnvBool("WATCH_DATA_FILES", false),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("DYNAMODB_TABLE", "portfolio"),
		EventBusName:  getEnv("EVENT_BUS_NAME", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		AdminUsername:  getEnv("ADMIN_USERNAME", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTIssuer:      getEnv("JWT_ISSUER", "portfolio"),
		JWTAudience:    getEnv("JWT_AUDIENCE", "portfolio-admin"),
		JWTExpiresIn:   lifetime,
		LoginRateLimit: getEnvInt("LOGIN_RATE_LIMIT", 5),

		GitHubUsername:   getEnv("GITHUB_USERNAME", ""),
		GitHubToken:      getEnv("GITHUB_TOKEN", ""),
		LeetCodeUsername: getEnv("LEETCODE_USERNAME", ""),

		EnableMetrics:    getEnvBool("ENABLE_METRICS", false),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "Portfolio"),

		EnableTracing:     getEnvBool("ENABLE_TRACING", false),
		TracingEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("TRACING_SAMPLE_RATE", 1),
		EnableXRay:        getEnvBool("ENABLE_XRAY", false),
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreFile, StoreMemory:
	case StoreDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the dynamodb store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}

	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATE must be between 0 and 1")
	}

	if c.IsProduction() {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.AdminUsername == "" || c.AdminPassword == "" {
			return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// parseProxies accepts a comma separated list of CIDRs or bare addresses.
func parseProxies(value string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, part := range splitList(value) {
		if strings.Contains(part, "/") {
			prefix, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, err
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(part)
		if err != nil {
			return nil, err
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

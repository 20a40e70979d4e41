package config

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_EXPIRES_IN", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("STORE_DRIVER", "DynamoDB")
	t.Setenv("JWT_EXPIRES_IN", "12h")
	t.Setenv("CORS_ORIGIN", "https://a.dev, https://b.dev,")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("WATCH_DATA_FILES", "yes")
	t.Setenv("LOGIN_RATE_LIMIT", "not-a-number")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, StoreDynamoDB, cfg.StoreDriver)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.WatchDataFiles)
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_EXPIRES_IN", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ADMIN_USERNAME", "")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "ADMIN_USERNAME")

	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "pw")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{StoreDriver: "postgres", JWTExpiresIn: time.Hour}
	assert.ErrorContains(t, cfg.Validate(), "STORE_DRIVER")
}

func TestLoadConfig_BadLifetime(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "forever")
	t.Setenv("STORE_DRIVER", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_EXPIRES_IN")
}

func TestLoadConfig_TrustedProxies(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.10")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.0.2.10/32"),
	}, cfg.TrustedProxies)
}

func TestLoadConfig_NoTrustedProxiesByDefault(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)
	assert.False(t, cfg.EnableTracing)
}

func TestLoadConfig_BadTrustedProxy(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "not-an-ip")

	_, err := LoadConfig()

	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}

func TestValidate_SampleRateRange(t *testing.T) {
	cfg := &Config{StoreDriver: StoreMemory, JWTExpiresIn: time.Hour, TracingSampleRate: 1.5}
	assert.ErrorContains(t, cfg.Validate(), "TRACING_SAMPLE_RATE")
}

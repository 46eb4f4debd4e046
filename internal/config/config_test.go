package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "SERVER_PORT", "STORE_DRIVER", "DATABASE_URL", "KAFKA_BROKERS", "ES_INDEX", "CSRF_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "storefront.db", cfg.DatabaseURL)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.True(t, cfg.CSRFEnabled)
	assert.Equal(t, ":8080", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")

	cfg := FromEnv()
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.NoError(t, cfg.Validate())
}

func TestEnvBoolDefault(t *testing.T) {
	t.Setenv("CSRF_ENABLED", "false")
	assert.False(t, EnvBoolDefault("CSRF_ENABLED", true))
	t.Setenv("CSRF_ENABLED", "maybe")
	assert.True(t, EnvBoolDefault("CSRF_ENABLED", true))
}

func TestEnvIntDefault_InvalidFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	assert.Equal(t, 8080, EnvIntDefault("SERVER_PORT", 8080))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "memory needs nothing", mutate: func(c *Config) { c.StoreDriver = DriverMemory; c.DatabaseURL = "" }},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "leveldb" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StoreDriver = DriverPostgres; c.DatabaseURL = "" }, wantErr: true},
		{name: "redis without url", mutate: func(c *Config) { c.StoreDriver = DriverRedis }, wantErr: true},
		{name: "empty namespace", mutate: func(c *Config) { c.StoreNamespace = "" }, wantErr: true},
		{name: "negative quota", mutate: func(c *Config) { c.StoreQuotaBytes = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{StoreDriver: DriverSQLite, DatabaseURL: "x.db", StoreNamespace: "default"}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

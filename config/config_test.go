package config_test

import (
	"testing"
	"time"

	"delivery-management-api/config"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "APP_ENV", "GIN_MODE", "JWT_SECRET", "TOKEN_TTL", "SHUTDOWN_TIMEOUT",
		"STORE_DRIVER", "SQLITE_PATH", "DATABASE_URL", "MONGO_URI", "MONGO_DATABASE",
		"MONGO_TRANSACTIONS", "PAYMENT_PER_ORDER", "PAYMENT_PER_MINUTE", "PAYMENT_PER_KM",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "production", cfg.AppEnv)
	require.Equal(t, "release", cfg.GinMode)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, config.StoreSQLite, cfg.Store.Driver)
	require.Equal(t, "delivery.db", cfg.Store.SQLitePath)
	require.Equal(t, "delivery", cfg.Store.MongoDatabase)
	require.False(t, cfg.Store.MongoTransactions)
	require.Equal(t, 10.0, cfg.Payment.PerOrder)
	require.Equal(t, 0.05, cfg.Payment.PerMinute)
	require.Equal(t, 0.20, cfg.Payment.PerKm)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "local")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("PAYMENT_PER_KM", "0.5")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.True(t, cfg.IsLocal())
	require.Equal(t, "debug", cfg.GinMode)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, config.StoreMongo, cfg.Store.Driver)
	require.True(t, cfg.Store.MongoTransactions)
	require.Equal(t, 0.5, cfg.Payment.PerKm)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")

	cfg, err := config.Load([]string{"-p", "7070", "--store", "postgres"})
	require.NoError(t, err)

	require.Equal(t, 7070, cfg.Port)
	require.Equal(t, config.StorePostgres, cfg.Store.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing secret", map[string]string{}, nil},
		{"port out of range", map[string]string{"JWT_SECRET": "s", "PORT": "70000"}, nil},
		{"port not a number", map[string]string{"JWT_SECRET": "s", "PORT": "http"}, nil},
		{"bad ttl", map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "soon"}, nil},
		{"postgres without url", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "postgres"}, nil},
		{"mongo without uri", map[string]string{"JWT_SECRET": "s"}, []string{"--store", "mongo"}},
		{"unknown store", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "redis"}, nil},
		{"unknown flag", map[string]string{"JWT_SECRET": "s"}, []string{"--nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load(tt.args)
			require.Error(t, err)
			require.Nil(t, cfg)
		})
	}
}

// Package config loads settings from .env, the environment and flags, and
// opens the configured store.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	Port            int
	AppEnv          string
	GinMode         string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	Store           StoreConfig
	Payment         PaymentConfig
}

type StoreConfig struct {
	Driver            string
	SQLitePath        string
	DatabaseURL       string
	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool
}

type PaymentConfig struct {
	PerOrder  float64
	PerMinute float64
	PerKm     float64
}

// IsLocal reports whether the service runs on a developer machine
func (c *Config) IsLocal() bool { return c.AppEnv == "local" }

// Load reads configuration in order: .env (if present) → environment → flags.
// args are the command-line arguments without the program name.
func Load(args []string) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load(".env")

	var errs []error
	cfg := &Config{
		Port:            envInt("PORT", 8080, &errs),
		AppEnv:          envString("APP_ENV", "production"),
		GinMode:         os.Getenv("GIN_MODE"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        envDuration("TOKEN_TTL", time.Hour, &errs),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
		Store: StoreConfig{
			Driver:            envString("STORE_DRIVER", StoreSQLite),
			SQLitePath:        envString("SQLITE_PATH", "delivery.db"),
			DatabaseURL:       os.Getenv("DATABASE_URL"),
			MongoURI:          os.Getenv("MONGO_URI"),
			MongoDatabase:     envString("MONGO_DATABASE", "delivery"),
			MongoTransactions: envBool("MONGO_TRANSACTIONS", false, &errs),
		},
		Payment: PaymentConfig{
			PerOrder:  envFloat("PAYMENT_PER_ORDER", 10, &errs),
			PerMinute: envFloat("PAYMENT_PER_MINUTE", 0.05, &errs),
			PerKm:     envFloat("PAYMENT_PER_KM", 0.20, &errs),
		},
	}

	fs := pflag.NewFlagSet("delivery-api", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.AppEnv, "env", cfg.AppEnv, "application environment (local, production)")
	fs.StringVar(&cfg.Store.Driver, "store", cfg.Store.Driver, "store backend: sqlite, postgres or mongo")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.GinMode == "" {
		cfg.GinMode = "release"
		if cfg.IsLocal() {
			cfg.GinMode = "debug"
		}
	}

	errs = append(errs, cfg.validate()...)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() []error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid TOKEN_TTL: %s", c.TokenTTL))
	}
	switch c.Store.Driver {
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH must not be empty"))
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case StoreMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}
	return errs
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return f
}

func envBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}

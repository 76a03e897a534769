package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Ledger        LedgerConfig        `yaml:"ledger"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the JSON API listener configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// LedgerConfig holds scoring rules that are tunable per deployment.
type LedgerConfig struct {
	// TokenPenalty is the score applied per unused tally token when a game
	// finishes. Negative by convention (-50 in standard house rules).
	TokenPenalty int `yaml:"token_penalty"`
	// ReconcileInterval is how often the background job re-derives cached
	// player totals from the entry ledger. Zero disables the periodic job.
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, fall back to environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	applyEnvOverrides(&cfg)
	cfg.applyDefaults()

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required (postgres.dsn or DATABASE_URL)")
	}

	return &cfg, nil
}

func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	applyEnvOverrides(&cfg)
	cfg.applyDefaults()

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("no config file found and DATABASE_URL is not set")
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("TOKEN_PENALTY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ledger.TokenPenalty = n
		}
	}
	if v := os.Getenv("RECONCILE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Ledger.ReconcileInterval = d
		}
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.NATS.URL == "" {
		cfg.NATS.URL = "nats://localhost:4222"
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 24 * time.Hour
	}
	if cfg.Ledger.TokenPenalty == 0 {
		cfg.Ledger.TokenPenalty = -50
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}

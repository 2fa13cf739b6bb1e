package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Discord       DiscordConfig       `yaml:"discord"`
	Prediction    PredictionConfig    `yaml:"prediction"`
	HTTP          HTTPConfig          `yaml:"http"`
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

// DiscordConfig holds the identifiers the backend needs to interpret
// gateway events. The gateway connection itself lives in the frontend.
type DiscordConfig struct {
	// CompanionBotID is the user ID of the official Wordle companion bot
	// whose /share embeds we ingest.
	CompanionBotID string `yaml:"companion_bot_id"`
	// WordleChannelID is the channel watched for score messages.
	WordleChannelID string `yaml:"wordle_channel_id"`
	// NotifyRatePerSecond caps outbound celebration messages.
	NotifyRatePerSecond float64 `yaml:"notify_rate_per_second"`
}

// PredictionConfig holds the daily prediction post settings.
type PredictionConfig struct {
	ChannelID string `yaml:"channel_id"`
	// HourUTC is the hour of day (UTC) the prediction digest is posted.
	HourUTC int `yaml:"hour_utc"`
}

// HTTPConfig holds the health/metrics server settings.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("COMPANION_BOT_ID"); v != "" {
		cfg.Discord.CompanionBotID = v
	}
	if v := os.Getenv("WORDLE_CHANNEL_ID"); v != "" {
		cfg.Discord.WordleChannelID = v
	}
	if v := os.Getenv("PREDICTION_CHANNEL_ID"); v != "" {
		cfg.Prediction.ChannelID = v
	}
	if v := os.Getenv("PREDICTION_HOUR_UTC"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			cfg.Prediction.HourUTC = h
		}
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Observability.MetricsEnabled = v == "true"
	}

	applyDefaults(&cfg)
	return &cfg, validate(&cfg)
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	cfg.Discord.CompanionBotID = os.Getenv("COMPANION_BOT_ID")
	cfg.Discord.WordleChannelID = os.Getenv("WORDLE_CHANNEL_ID")
	cfg.Prediction.ChannelID = os.Getenv("PREDICTION_CHANNEL_ID")
	if v := os.Getenv("PREDICTION_HOUR_UTC"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PREDICTION_HOUR_UTC value: %v", err)
		}
		cfg.Prediction.HourUTC = h
	}
	cfg.HTTP.Addr = os.Getenv("HTTP_ADDR")
	cfg.Observability.Environment = os.Getenv("ENV")
	cfg.Observability.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.Observability.MetricsEnabled = os.Getenv("METRICS_ENABLED") == "true"

	applyDefaults(&cfg)
	return &cfg, validate(&cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Discord.NotifyRatePerSecond <= 0 {
		cfg.Discord.NotifyRatePerSecond = 1
	}
	if cfg.Prediction.HourUTC == 0 {
		cfg.Prediction.HourUTC = 8
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
}

func validate(cfg *Config) error {
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required")
	}
	if cfg.NATS.URL == "" {
		return fmt.Errorf("nats.url is required")
	}
	if cfg.Prediction.HourUTC < 0 || cfg.Prediction.HourUTC > 23 {
		return fmt.Errorf("prediction.hour_utc must be between 0 and 23, got %d", cfg.Prediction.HourUTC)
	}
	return nil
}

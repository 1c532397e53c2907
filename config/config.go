package config

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// JobConfig describes one guarded job: its lock key, trigger schedule,
// command and lock options.
type JobConfig struct {
	Key          string `mapstructure:"key" validate:"required"`
	Schedule     string `mapstructure:"schedule"`
	Command      string `mapstructure:"command" validate:"required"`
	TTLSeconds   int    `mapstructure:"ttl_seconds" validate:"gte=0"`
	MaxRetries   int    `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelayMs int    `mapstructure:"retry_delay_ms" validate:"gte=0"`
}

// Config represents the comprehensive application configuration
type Config struct {
	ServerPort     string `validate:"required"`
	LogLevel       slog.Level
	GinMode        string `validate:"required,oneof=debug release test"`
	RedisURL       string `validate:"required,url"`
	KafkaBrokers   []string
	StoreTimeoutMs int         `validate:"gt=0"`
	Jobs           []JobConfig `validate:"dive"`
}

// Validate performs structural validation on the configuration
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seen := make(map[string]bool, len(c.Jobs))
	for _, job := range c.Jobs {
		if seen[job.Key] {
			return fmt.Errorf("invalid configuration: duplicate job key %q", job.Key)
		}
		seen[job.Key] = true
	}

	return nil
}

// LoadConfig loads and validates the application configuration
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("kafka_brokers", []string{})
	v.SetDefault("store_timeout_ms", 2000)

	// Configure config file search paths. Job definitions live in the
	// file; scalar settings can also come from the environment.
	v.SetConfigName("jobguard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		// It's okay if no config file is found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Tell Viper to automatically override values from environment variables
	v.AutomaticEnv()

	// Bind environment variables
	envVars := []struct {
		key, envName string
	}{
		{"server_port", "SERVER_PORT"},
		{"log_level", "LOG_LEVEL"},
		{"gin_mode", "GIN_MODE"},
		{"redis_url", "REDIS_URL"},
		{"kafka_brokers", "KAFKA_BROKERS"},
		{"store_timeout_ms", "STORE_TIMEOUT_MS"},
	}

	for _, ev := range envVars {
		if err := v.BindEnv(ev.key, ev.envName); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", ev.envName, err)
		}
	}

	var jobs []JobConfig
	if err := v.UnmarshalKey("jobs", &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job definitions: %w", err)
	}

	// Prepare configuration
	config := &Config{
		ServerPort:     v.GetString("server_port"),
		LogLevel:       getLogLevel(v.GetString("log_level")),
		GinMode:        v.GetString("gin_mode"),
		RedisURL:       v.GetString("redis_url"),
		KafkaBrokers:   v.GetStringSlice("kafka_brokers"),
		StoreTimeoutMs: v.GetInt("store_timeout_ms"),
		Jobs:           jobs,
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// getLogLevel converts string log level to slog.Level
func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

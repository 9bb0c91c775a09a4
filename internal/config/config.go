package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Inventory InventoryConfig
	Journal   JournalConfig
	Seed      SeedConfig
	S3        S3Config
	Report    ReportConfig
	Metrics   MetricsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int // seconds
	WriteTimeout    int // seconds
	IdleTimeout     int // seconds
	ShutdownTimeout int // seconds
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// InventoryConfig holds the presentation policies applied around the inventory.
type InventoryConfig struct {
	DeleteRequiresZero bool
	LowStockThreshold  int
}

// JournalConfig holds activity journal configuration.
type JournalConfig struct {
	Enabled         bool
	BufferSize      int
	BatchSize       int
	FlushIntervalMs int
}

// SeedConfig holds start-up catalogue import configuration.
type SeedConfig struct {
	Enabled bool
	Files   []string
}

// S3Config holds AWS S3 configuration for seed files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "seed/")
}

// ReportConfig holds the scheduled stock report configuration.
type ReportConfig struct {
	Enabled  bool
	Schedule string // standard 5-field cron expression
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool
}

const (
	configFile = "config.yaml"
	envFile    = ".env"
)

// Load loads configuration from config.yaml, .env and environment variables,
// in increasing order of priority. Keys are the environment variable names;
// config.yaml spells them in lower case (server_port: 9090).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", configFile, err)
	}

	if envMap, err := godotenv.Read(envFile); err == nil {
		values := make(map[string]interface{}, len(envMap))
		for key, value := range envMap {
			values[keyTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	if err := k.Load(env.Provider("", ".", keyTransformer), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv(k, "SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt(k, "SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsInt(k, "SERVER_READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt(k, "SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:     getEnvAsInt(k, "SERVER_IDLE_TIMEOUT", 60),
			ShutdownTimeout: getEnvAsInt(k, "SERVER_SHUTDOWN_TIMEOUT", 30),
		},
		Database: DatabaseConfig{
			Host:            getEnv(k, "DB_HOST", "localhost"),
			Port:            getEnvAsInt(k, "DB_PORT", 5432),
			User:            getEnv(k, "DB_USER", "postgres"),
			Password:        getEnv(k, "DB_PASSWORD", ""),
			Database:        getEnv(k, "DB_NAME", "inventory"),
			MaxConnections:  getEnvAsInt(k, "DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt(k, "DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt(k, "DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv(k, "LOG_LEVEL", "info"),
			Format: getEnv(k, "LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv(k, "API_KEY", ""),
		},
		Inventory: InventoryConfig{
			DeleteRequiresZero: getEnvAsBool(k, "INVENTORY_DELETE_REQUIRES_ZERO", true),
			LowStockThreshold:  getEnvAsInt(k, "INVENTORY_LOW_STOCK_THRESHOLD", 10),
		},
		Journal: JournalConfig{
			Enabled:         getEnvAsBool(k, "JOURNAL_ENABLED", false),
			BufferSize:      getEnvAsInt(k, "JOURNAL_BUFFER_SIZE", 256),
			BatchSize:       getEnvAsInt(k, "JOURNAL_BATCH_SIZE", 50),
			FlushIntervalMs: getEnvAsInt(k, "JOURNAL_FLUSH_INTERVAL_MS", 1000),
		},
		Seed: SeedConfig{
			Enabled: getEnvAsBool(k, "SEED_ENABLED", false),
			Files:   getEnvAsList(k, "SEED_FILES", []string{"data/seed/products.jsonl.gz"}),
		},
		S3: S3Config{
			Enabled: getEnvAsBool(k, "S3_ENABLED", false),
			Bucket:  getEnv(k, "S3_BUCKET", ""),
			Region:  getEnv(k, "S3_REGION", "us-east-1"),
			Prefix:  getEnv(k, "S3_PREFIX", "seed/"),
		},
		Report: ReportConfig{
			Enabled:  getEnvAsBool(k, "REPORT_ENABLED", false),
			Schedule: getEnv(k, "REPORT_SCHEDULE", "0 * * * *"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool(k, "METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout < 1 || c.Server.WriteTimeout < 1 || c.Server.IdleTimeout < 1 {
		return fmt.Errorf("server timeouts must be at least 1 second")
	}

	if c.Server.ShutdownTimeout < 1 {
		return fmt.Errorf("server shutdown timeout must be at least 1 second")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Inventory.LowStockThreshold < 1 {
		return fmt.Errorf("low stock threshold must be at least 1")
	}

	if c.Journal.Enabled {
		if err := c.Database.validate(); err != nil {
			return err
		}
		if c.Journal.BufferSize < 1 {
			return fmt.Errorf("journal buffer size must be at least 1")
		}
		if c.Journal.BatchSize < 1 {
			return fmt.Errorf("journal batch size must be at least 1")
		}
		if c.Journal.FlushIntervalMs < 1 {
			return fmt.Errorf("journal flush interval must be at least 1ms")
		}
	}

	if c.Seed.Enabled && len(c.Seed.Files) == 0 {
		return fmt.Errorf("at least one seed file is required when seeding is enabled")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Report.Enabled && strings.TrimSpace(c.Report.Schedule) == "" {
		return fmt.Errorf("report schedule is required when the stock report is enabled")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FlushInterval returns the journal flush interval as a duration.
func (c *JournalConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}

// keyTransformer maps SERVER_PORT style names onto koanf keys.
func keyTransformer(key string) string {
	return strings.ToLower(key)
}

// getEnv retrieves a configuration value or returns a default value.
func getEnv(k *koanf.Koanf, key, defaultValue string) string {
	if value := strings.TrimSpace(k.String(keyTransformer(key))); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves a configuration value as an integer or returns a default value.
func getEnvAsInt(k *koanf.Koanf, key string, defaultValue int) int {
	if value := getEnv(k, key, ""); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves a configuration value as a boolean or returns a default value.
func getEnvAsBool(k *koanf.Koanf, key string, defaultValue bool) bool {
	if value := getEnv(k, key, ""); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList retrieves a comma-separated configuration value or returns a default value.
func getEnvAsList(k *koanf.Koanf, key string, defaultValue []string) []string {
	value := getEnv(k, key, "")
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

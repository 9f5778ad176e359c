package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// DatabaseConfig contains the connection settings for the orders store.
// URL wins when set; it is normally supplied through DATABASE_URL in the
// environment or a .env file.
type DatabaseConfig struct {
	URL             string        `yaml:"url" envconfig:"URL"`
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"MAX_OPEN_CONNS" default:"10" validate:"gt=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS" default:"5" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	BatchSize       int           `yaml:"batch_size" envconfig:"BATCH_SIZE" default:"1000" validate:"gt=0"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	RawFile    string `yaml:"raw_file" envconfig:"RAW_FILE" default:"data/raw/orders.csv"`
	CleanFile  string `yaml:"clean_file" envconfig:"CLEAN_FILE" default:"data/processed/orders_clean.csv"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
	ConfigFile string `yaml:"-" envconfig:"CONFIG_FILE"`
}

// Load loads configuration from a .env file (if present), environment
// variables, and an optional YAML config file. Environment variables win
// over the file.
func Load() (*Config, error) {
	// .env is optional; missing files are not an error
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("RETAIL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// DATABASE_URL without the prefix is the conventional spelling used by
	// hosted Postgres providers; honor it as a fallback.
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}

	configFile := cfg.Paths.ConfigFile
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envIsSet reports whether a prefixed environment variable was explicitly
// provided, as opposed to envconfig filling in a struct-tag default.
func envIsSet(key string) bool {
	_, ok := os.LookupEnv("RETAIL_" + key)
	return ok
}

// mergeConfigs overlays the env-derived config on top of the file config.
// A field from env wins only when its variable was explicitly set;
// otherwise a non-zero file value beats the struct-tag default.
func mergeConfigs(file, env Config) Config {
	merged := env

	if !envIsSet("SERVER_PORT") && file.Server.Port != 0 {
		merged.Server.Port = file.Server.Port
	}
	if !envIsSet("SERVER_READ_TIMEOUT") && file.Server.ReadTimeout != 0 {
		merged.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if !envIsSet("SERVER_WRITE_TIMEOUT") && file.Server.WriteTimeout != 0 {
		merged.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if !envIsSet("SERVER_IDLE_TIMEOUT") && file.Server.IdleTimeout != 0 {
		merged.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if !envIsSet("SERVER_SHUTDOWN_TIMEOUT") && file.Server.ShutdownTimeout != 0 {
		merged.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if !envIsSet("SERVER_RATE_LIMIT_ENABLED") && !file.Server.RateLimit.Enabled && file.Server.RateLimit.RPS != 0 {
		merged.Server.RateLimit.Enabled = false
	}
	if !envIsSet("SERVER_RATE_LIMIT_RPS") && file.Server.RateLimit.RPS != 0 {
		merged.Server.RateLimit.RPS = file.Server.RateLimit.RPS
	}
	if !envIsSet("SERVER_RATE_LIMIT_BURST") && file.Server.RateLimit.Burst != 0 {
		merged.Server.RateLimit.Burst = file.Server.RateLimit.Burst
	}
	if !envIsSet("LOGGING_LEVEL") && file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if !envIsSet("LOGGING_OUTPUT") && file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if !envIsSet("LOGGING_FILE_PATH") && file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}
	if !envIsSet("DATABASE_URL") && merged.Database.URL == "" && file.Database.URL != "" {
		merged.Database.URL = file.Database.URL
	}
	if !envIsSet("DATABASE_MAX_OPEN_CONNS") && file.Database.MaxOpenConns != 0 {
		merged.Database.MaxOpenConns = file.Database.MaxOpenConns
	}
	if !envIsSet("DATABASE_MAX_IDLE_CONNS") && file.Database.MaxIdleConns != 0 {
		merged.Database.MaxIdleConns = file.Database.MaxIdleConns
	}
	if !envIsSet("DATABASE_CONN_MAX_LIFETIME") && file.Database.ConnMaxLifetime != 0 {
		merged.Database.ConnMaxLifetime = file.Database.ConnMaxLifetime
	}
	if !envIsSet("DATABASE_BATCH_SIZE") && file.Database.BatchSize != 0 {
		merged.Database.BatchSize = file.Database.BatchSize
	}
	if !envIsSet("PATHS_DATA_DIR") && file.Paths.DataDir != "" {
		merged.Paths.DataDir = file.Paths.DataDir
	}
	if !envIsSet("PATHS_RAW_FILE") && file.Paths.RawFile != "" {
		merged.Paths.RawFile = file.Paths.RawFile
	}
	if !envIsSet("PATHS_CLEAN_FILE") && file.Paths.CleanFile != "" {
		merged.Paths.CleanFile = file.Paths.CleanFile
	}
	if !envIsSet("PATHS_LOGS_DIR") && file.Paths.LogsDir != "" {
		merged.Paths.LogsDir = file.Paths.LogsDir
	}

	return merged
}

// Validate checks the configuration with struct tags
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// GetLogPath returns the path of a log file under the configured logs dir
func (c *Config) GetLogPath(filename string) string {
	return filepath.Join(c.Paths.LogsDir, filename)
}

// EnsureDirectories creates the directories the tools write into
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.DataDir,
		filepath.Dir(c.Paths.RawFile),
		filepath.Dir(c.Paths.CleanFile),
		c.Paths.LogsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

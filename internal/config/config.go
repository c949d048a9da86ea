// Package config loads the service configuration from an optional YAML file,
// a .env file and SHARKTRACK_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SHARKTRACK_SERVER_PORT
const EnvPrefix = "SHARKTRACK"

// Config is the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Feed      FeedConfig      `mapstructure:"feed"`
}

// ServerConfig configures the query service
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"` // requests per second per client
	RateBurst       int           `mapstructure:"rate_burst"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"` // 0 disables periodic regeneration
}

// LogConfig configures logging
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	AddSource bool   `mapstructure:"add_source"`
}

// GeneratorConfig configures dataset generation
type GeneratorConfig struct {
	Seed        uint64  `mapstructure:"seed"` // 0 derives a seed from the clock
	Samples     int     `mapstructure:"samples"`
	Sharks      int     `mapstructure:"sharks"`
	MinEvents   int     `mapstructure:"min_events"`
	MaxEvents   int     `mapstructure:"max_events"`
	EventRadius float64 `mapstructure:"event_radius"`
	OutputDir   string  `mapstructure:"output_dir"`
	SQLitePath  string  `mapstructure:"sqlite_path"` // empty disables the SQLite sink
}

// FeedConfig configures the external feeds
type FeedConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	EventsURL   string        `mapstructure:"events_url"`
	ProductsURL string        `mapstructure:"products_url"`
	EventDays   int           `mapstructure:"event_days"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.refresh_interval", time.Duration(0))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.add_source", false)

	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.samples", 150)
	v.SetDefault("generator.sharks", 12)
	v.SetDefault("generator.min_events", 8)
	v.SetDefault("generator.max_events", 15)
	v.SetDefault("generator.event_radius", 2.0)
	v.SetDefault("generator.output_dir", "./data")
	v.SetDefault("generator.sqlite_path", "")

	v.SetDefault("feed.enabled", true)
	v.SetDefault("feed.events_url", "https://eonet.gsfc.nasa.gov/api/v3/events")
	v.SetDefault("feed.products_url", "https://oceandata.sci.gsfc.nasa.gov/api/file_search")
	v.SetDefault("feed.event_days", 60)
	v.SetDefault("feed.timeout", 10*time.Second)
	v.SetDefault("feed.cache_ttl", 15*time.Minute)
}

// Load reads the configuration. An explicit configPath must exist; otherwise
// config.yaml is looked up in ./configs and . and is optional.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		return fmt.Errorf("invalid server mode: %s, must be 'debug', 'release' or 'test'", c.Server.Mode)
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return fmt.Errorf("server.rate_limit and server.rate_burst must be positive")
	}
	if c.Server.RefreshInterval < 0 {
		return fmt.Errorf("server.refresh_interval must not be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}
	switch c.Log.Output {
	case "stdout", "stderr":
	case "file":
		if c.Log.FilePath == "" {
			return fmt.Errorf("log.file_path is required when log.output is 'file'")
		}
	default:
		return fmt.Errorf("invalid log output: %s", c.Log.Output)
	}

	g := c.Generator
	if g.Samples <= 0 {
		return fmt.Errorf("generator.samples must be positive")
	}
	if g.Sharks < 0 {
		return fmt.Errorf("generator.sharks must not be negative")
	}
	if g.MinEvents < 0 || g.MaxEvents < g.MinEvents {
		return fmt.Errorf("invalid event range [%d, %d]", g.MinEvents, g.MaxEvents)
	}
	if g.EventRadius <= 0 {
		return fmt.Errorf("generator.event_radius must be positive")
	}
	if g.OutputDir == "" {
		return fmt.Errorf("generator.output_dir is required")
	}

	if c.Feed.Enabled {
		if c.Feed.EventsURL == "" || c.Feed.ProductsURL == "" {
			return fmt.Errorf("feed URLs are required when the feed is enabled")
		}
		if c.Feed.Timeout <= 0 {
			return fmt.Errorf("feed.timeout must be positive")
		}
	}

	return nil
}

// ServerAddr returns the listen address
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

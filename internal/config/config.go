package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Dataset source kinds
const (
	SourceFile     = "file"
	SourceRedis    = "redis"
	SourcePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	PagePath        string        `yaml:"page_path" mapstructure:"page_path"`
	CORSOrigins     []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// DatasetConfig selects where the slate dataset is loaded from
type DatasetConfig struct {
	Source      string `yaml:"source" mapstructure:"source"`
	Path        string `yaml:"path" mapstructure:"path"`
	RedisURL    string `yaml:"redis_url" mapstructure:"redis_url"`
	RedisKey    string `yaml:"redis_key" mapstructure:"redis_key"`
	PostgresDSN string `yaml:"postgres_dsn" mapstructure:"postgres_dsn"`
	Table       string `yaml:"table" mapstructure:"table"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from an optional config.yaml and the environment.
// Environment variables use the SLATE_DASHBOARD_ prefix, e.g.
// SLATE_DASHBOARD_DATASET_SOURCE=redis.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SLATE_DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.page_path", "/")
	v.SetDefault("server.cors_origins", []string{
		"http://localhost:3000",
		"http://localhost:3001",
	})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("dataset.source", SourceFile)
	v.SetDefault("dataset.path", "data.json")
	v.SetDefault("dataset.redis_url", "redis://localhost:6380")
	v.SetDefault("dataset.redis_key", "dfs:slates")
	v.SetDefault("dataset.postgres_dsn", "")
	v.SetDefault("dataset.table", "dfs_slates")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that have no usable fallback
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceFile:
		if c.Dataset.Path == "" {
			return eris.New("config: dataset.path is required for the file source")
		}
	case SourceRedis:
		if c.Dataset.RedisURL == "" {
			return eris.New("config: dataset.redis_url is required for the redis source")
		}
	case SourcePostgres:
		if c.Dataset.PostgresDSN == "" {
			return eris.New("config: dataset.postgres_dsn is required for the postgres source")
		}
	default:
		return eris.Errorf("config: unknown dataset.source %q", c.Dataset.Source)
	}
	return nil
}

// InitLogger initializes the global zap logger
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

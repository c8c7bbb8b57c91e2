package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/elbow"
	"github.com/spf13/viper"
)

// Config is the CLI configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	KMeans  KMeansConfig  `mapstructure:"kmeans"`
	Log     LogConfig     `mapstructure:"log"`
	IO      IOConfig      `mapstructure:"io"`
}

// StorageConfig selects where matrices are read and reports written.
type StorageConfig struct {
	Backend   string `mapstructure:"backend"` // local, s3, minio
	Root      string `mapstructure:"root"`    // local only
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Secure    bool   `mapstructure:"secure"`
}

// CatalogConfig selects where sweep curves are recorded.
type CatalogConfig struct {
	Backend string `mapstructure:"backend"` // memory, dynamodb
	Table   string `mapstructure:"table"`
	Region  string `mapstructure:"region"`
}

// KMeansConfig holds engine defaults.
type KMeansConfig struct {
	MaxIterations int    `mapstructure:"max_iterations"`
	Seed          uint64 `mapstructure:"seed"`
	Workers       int    `mapstructure:"workers"`

	hasSeed bool
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

// IOConfig holds resource limits.
type IOConfig struct {
	LimitBytesPerSec int64 `mapstructure:"limit_bytes_per_sec"`
	MaxRuns          int64 `mapstructure:"max_runs"`
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.root", ".")
	v.SetDefault("storage.secure", true)

	v.SetDefault("catalog.backend", "memory")
	v.SetDefault("catalog.table", "elbow-catalog")

	v.SetDefault("kmeans.max_iterations", elbow.DefaultMaxIterations)
	v.SetDefault("kmeans.workers", 0) // GOMAXPROCS

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("io.limit_bytes_per_sec", 0) // unlimited
	v.SetDefault("io.max_runs", 0)            // no cross-sweep limit
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ELBOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// loadConfig reads the optional config file and unmarshals v.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.KMeans.hasSeed = v.IsSet("kmeans.seed")
	return &cfg, nil
}

func (c *Config) logger(w io.Writer) (*elbow.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	switch c.Log.Format {
	case "json":
		return elbow.NewJSONLogger(w, level), nil
	case "text", "":
		return elbow.NewTextLogger(w, level), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", c.Log.Format)
	}
}

func (c *Config) options(logger *elbow.Logger, rc *elbow.ResourceController) []elbow.Option {
	opts := []elbow.Option{
		elbow.WithMaxIterations(c.KMeans.MaxIterations),
		elbow.WithWorkers(c.KMeans.Workers),
		elbow.WithLogger(logger),
		elbow.WithResourceController(rc),
	}
	if c.KMeans.hasSeed {
		opts = append(opts, elbow.WithSeed(c.KMeans.Seed))
	}
	return opts
}

func (c *Config) resourceController() *elbow.ResourceController {
	maxRuns := c.IO.MaxRuns
	if maxRuns <= 0 {
		maxRuns = 1 << 20
	}
	return elbow.NewResourceController(elbow.ResourceConfig{
		MaxRuns:            maxRuns,
		IOLimitBytesPerSec: c.IO.LimitBytesPerSec,
	})
}

// Package config loads runtime settings from a config file, the environment
// and an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. EJBMETA_LOG_LEVEL
const EnvPrefix = "EJBMETA"

// Config represents the application configuration
type Config struct {
	Resolver    ResolverConfig    `mapstructure:"resolver"`
	Annotations AnnotationsConfig `mapstructure:"annotations"`
	Resources   ResourcesConfig   `mapstructure:"resources"`
	Log         LogConfig         `mapstructure:"log"`
	Server      ServerConfig      `mapstructure:"server"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ResolverConfig holds attribute resolution settings
type ResolverConfig struct {
	DefaultTransaction string `mapstructure:"default_transaction"` // attribute of methods no rule covers
	StrictInterceptors bool   `mapstructure:"strict_interceptors"` // fail on undeclared interceptor classes
}

// AnnotationsConfig holds annotation parser settings
type AnnotationsConfig struct {
	CacheSize int `mapstructure:"cache_size"` // parsed annotation LRU size
}

// ResourcesConfig holds resource ordering settings
type ResourcesConfig struct {
	// Prefix is stripped from resource ids before property values are
	// matched against them, e.g. "app/" so that "app/jdbc/db" is "jdbc/db"
	Prefix string `mapstructure:"prefix"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`  // logrus level name
	Format string `mapstructure:"format"` // text or json
}

// ServerConfig holds inspection server settings
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	Framework string `mapstructure:"framework"` // gin, echo or fiber
}

// MetricsConfig holds prometheus settings
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Load reads the configuration. An empty path means "ejbmeta.yaml" in the
// working directory; a missing file falls back to defaults. A .env file in
// the working directory is loaded into the environment first, and EJBMETA_*
// variables override file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = "ejbmeta.yaml"
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !missing(err) {
			return nil, errors.WrapFileSystemError("read config", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapConfigurationError("config", "unmarshal", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file or environment
// overrides are present
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("resolver.default_transaction", string(models.Required))
	v.SetDefault("resolver.strict_interceptors", true)

	v.SetDefault("annotations.cache_size", 512)

	v.SetDefault("resources.prefix", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8089")
	v.SetDefault("server.framework", "gin")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "ejbmeta")
}

func missing(err error) bool {
	if os.IsNotExist(err) {
		return true
	}
	_, notFound := err.(viper.ConfigFileNotFoundError)
	return notFound || strings.Contains(err.Error(), "no such file")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	multi := errors.NewMultipleErrors()

	if _, err := models.ParseTransAttribute(c.Resolver.DefaultTransaction); err != nil {
		multi.Add(errors.NewValidationError("resolver.default_transaction", "a transaction attribute", c.Resolver.DefaultTransaction))
	}
	if c.Annotations.CacheSize < 0 {
		multi.Add(errors.NewValidationError("annotations.cache_size", "0 or greater", strconv.Itoa(c.Annotations.CacheSize)))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		multi.Add(errors.NewValidationError("log.level", "a logrus level", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		multi.Add(errors.NewValidationError("log.format", "text or json", c.Log.Format))
	}
	switch c.Server.Framework {
	case "gin", "echo", "fiber":
	default:
		multi.Add(errors.NewValidationError("server.framework", "gin, echo or fiber", c.Server.Framework))
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		multi.Add(errors.NewValidationError("metrics.namespace", "a non-empty prometheus namespace", ""))
	}

	return multi.ErrOrNil()
}

// DefaultTransaction returns the parsed default transaction attribute
func (c *Config) DefaultTransaction() models.TransAttribute {
	ta, err := models.ParseTransAttribute(c.Resolver.DefaultTransaction)
	if err != nil {
		return models.Required
	}
	return ta
}

// NewLogger builds a logrus logger from the log settings
func (c LogConfig) NewLogger() *logrus.Logger {
	log := logrus.New()
	if level, err := logrus.ParseLevel(c.Level); err == nil {
		log.SetLevel(level)
	}
	if c.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return log
}

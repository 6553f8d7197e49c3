package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/spap"
	spaphttp "github.com/sagarc03/spap/http"
	"github.com/sagarc03/spap/s3store"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for spap.
type Config struct {
	ContentsLocation string              `mapstructure:"contents_location" validate:"required"`
	Rewrite404       string              `mapstructure:"rewrite404"`
	IndexDocument    string              `mapstructure:"index_document" validate:"required"`
	Env              string              `mapstructure:"env"`
	Server           ServerConfig        `mapstructure:"server"`
	Storage          StorageConfig       `mapstructure:"storage"`
	AWS              s3store.Config      `mapstructure:"aws"`
	CORS             spaphttp.CORSConfig `mapstructure:"cors"`
	Metrics          MetricsConfig       `mapstructure:"metrics"`
	Log              LogConfig           `mapstructure:"log"`
}

// Location parses ContentsLocation.
func (c *Config) Location() (spap.Location, error) {
	return spap.ParseLocation(c.ContentsLocation)
}

// ServerConfig holds configuration for the local HTTP server.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Resource string `mapstructure:"resource" validate:"required,startswith=/"`
}

// StorageConfig selects the object store backend.
type StorageConfig struct {
	Backend      string `mapstructure:"backend" validate:"required,oneof=s3 filesystem"`
	Path         string `mapstructure:"path" validate:"required_if=Backend filesystem"`
	CacheControl string `mapstructure:"cache_control"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"contents-location": "contents_location",
	"rewrite404":        "rewrite404",
	"index-document":    "index_document",
	"port":              "server.port",
	"resource":          "server.resource",
	"backend":           "storage.backend",
	"storage-path":      "storage.path",
	"cache-control":     "storage.cache_control",
	"endpoint":          "aws.endpoint",
	"region":            "aws.region",
	"metrics":           "metrics.enabled",
	"log-level":         "log.level",
}

// unprefixedEnv lists keys that are also read from their bare environment
// variable names, as set on a deployed Lambda function.
var unprefixedEnv = map[string]string{
	"contents_location": "CONTENTS_LOCATION",
	"rewrite404":        "REWRITE404",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// bindEnv binds SPAP_ prefixed variables for every key and the bare names in
// unprefixedEnv. The prefixed form wins when both are set.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("SPAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range unprefixedEnv {
		_ = v.BindEnv(key, "SPAP_"+strings.ToUpper(key), name)
	}
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("rewrite404", "")
	v.SetDefault("index_document", spap.DefaultIndexDocument)
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 5708)
	v.SetDefault("server.resource", spaphttp.DefaultResource)

	v.SetDefault("storage.backend", "s3")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.cache_control", "")

	v.SetDefault("aws.region", "")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.use_path_style", false)
	v.SetDefault("aws.access_key_id", "")
	v.SetDefault("aws.secret_access_key", "")
	v.SetDefault("aws.max_retries", 3)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD"})
	v.SetDefault("cors.allowed_headers", []string{})
	v.SetDefault("cors.exposed_headers", []string{spap.HeaderOriginARN})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("metrics.enabled", false)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	bindEnv(v)

	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

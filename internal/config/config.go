// Package config loads timefmtd settings with koanf from defaults, an
// optional YAML file and the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/locale"
)

// FileEnvVar names the environment variable holding an optional YAML
// config path.
const FileEnvVar = "CONFIG_FILE"

// Config is the full timefmtd configuration.
type Config struct {
	Environment string `koanf:"environment" validate:"oneof=local dev prod"`

	Log    LogConfig    `koanf:"log"`
	HTTP   HTTPConfig   `koanf:"http"`
	GRPC   GRPCConfig   `koanf:"grpc"`
	Locale LocaleConfig `koanf:"locale"`
	Redis  RedisConfig  `koanf:"redis"`
	OTEL   OTELConfig   `koanf:"otel"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

// HTTPConfig holds the HTTP listener settings.
type HTTPConfig struct {
	Port int `koanf:"port" validate:"min=1,max=65535"`
}

// GRPCConfig holds the gRPC listener settings.
type GRPCConfig struct {
	Port int `koanf:"port" validate:"min=1,max=65535"`
}

// LocaleConfig holds the formatting defaults applied when a request names
// no locale of its own.
type LocaleConfig struct {
	Default  string `koanf:"default" validate:"required"`
	Timezone string `koanf:"timezone" validate:"required"`
}

// RedisConfig holds Redis configuration. An empty Addr disables the
// locale preference store outside prod.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db" validate:"gte=0,lte=15"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

// OTELConfig points telemetry at an OTLP collector. An empty Endpoint
// keeps spans and metrics in-process; an empty ServiceName falls back to
// the binary name.
type OTELConfig struct {
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

func defaults() *Config {
	return &Config{
		Environment: "local",
		Log:         LogConfig{Level: "info", Format: "json"},
		HTTP:        HTTPConfig{Port: 8080},
		GRPC:        GRPCConfig{Port: 9090},
		Locale:      LocaleConfig{Default: domain.DefaultLocale, Timezone: "UTC"},
		Redis:       RedisConfig{Timeout: domain.RedisTimeout},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load builds the Config from compiled defaults, then the YAML file named
// by CONFIG_FILE when set, then environment variables, each layer
// overriding the one before. The result is validated before it is
// returned.
func Load(ctx context.Context) (*Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	// Sections are one level deep: OTEL_SERVICE_NAME → otel.service_name.
	envKey := func(s string) string {
		return strings.Replace(strings.ToLower(s), "_", ".", 1)
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints, the locale defaults, and the keys
// required by the environment.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return fmt.Errorf("%w: %s failed %s", domain.ErrInvalidInput, errs[0].Namespace(), errs[0].Tag())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	if _, err := locale.Parse(c.Locale.Default); err != nil {
		return fmt.Errorf("locale.default: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.IsProd() && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr", domain.ErrConfigRequired)
	}
	return nil
}

// DefaultLocale returns the configured fallback locale.
func (c *Config) DefaultLocale() locale.Tag {
	return locale.Match(c.Locale.Default)
}

// Location loads the configured default time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Locale.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: locale.timezone %q", domain.ErrInvalidTimezone, c.Locale.Timezone)
	}
	return loc, nil
}

// IsProd reports whether the service runs in production, where the
// preference store is mandatory.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

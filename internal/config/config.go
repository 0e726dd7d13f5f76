// Package config loads founderfit settings from defaults, an optional YAML
// file and FOUNDERFIT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/founderfit/internal/advice"
)

// EnvPrefix is prepended to every environment override, so "server.addr"
// is read from FOUNDERFIT_SERVER_ADDR.
const EnvPrefix = "FOUNDERFIT"

// configFiles are tried in order when no explicit path is given.
var configFiles = []string{"founderfit.yaml", ".founderfit.yaml", "founderfit.yml"}

// Config is the resolved application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       string         `mapstructure:"db"`
	Catalog  string         `mapstructure:"catalog"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Advice   AdviceConfig   `mapstructure:"advice"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
}

type SessionsConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AdviceConfig struct {
	Temperature      float64 `mapstructure:"temperature"`
	MaxTokens        int     `mapstructure:"max_tokens"`
	SummaryMaxTokens int     `mapstructure:"summary_max_tokens"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	// Advice streams can run long; the write timeout covers the whole response.
	v.SetDefault("server.write_timeout", 3*time.Minute)
	v.SetDefault("server.request_timeout", 2*time.Minute)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("db", "")
	v.SetDefault("catalog", "")
	v.SetDefault("sessions.backend", "memory")
	v.SetDefault("sessions.ttl", 2*time.Hour)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	d := advice.DefaultConfig()
	v.SetDefault("advice.temperature", d.Temperature)
	v.SetDefault("advice.max_tokens", d.MaxTokens)
	v.SetDefault("advice.summary_max_tokens", d.SummaryMaxTokens)
}

// Load resolves the configuration. An explicit path must exist; otherwise
// the default file names are tried in the working directory and a missing
// file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	var used string
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		used = path
	} else {
		for _, p := range configFiles {
			v.SetConfigFile(p)
			if err := v.ReadInConfig(); err == nil {
				used = p
				break
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks enumerated values and numeric ranges.
func (c *Config) Validate() error {
	var errs []error

	switch c.Sessions.Backend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("sessions.backend must be 'memory' or 'redis', got %q", c.Sessions.Backend))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format))
	}
	if c.Advice.Temperature < 0 || c.Advice.Temperature > 2 {
		errs = append(errs, fmt.Errorf("advice.temperature must be in [0,2], got %g", c.Advice.Temperature))
	}
	if c.Advice.MaxTokens < 1 {
		errs = append(errs, errors.New("advice.max_tokens must be at least 1"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	return errors.Join(errs...)
}

// AdviceSettings converts the advice section for the advice service.
func (c *Config) AdviceSettings() advice.Config {
	return advice.Config{
		MaxTokens:        c.Advice.MaxTokens,
		Temperature:      c.Advice.Temperature,
		SummaryMaxTokens: c.Advice.SummaryMaxTokens,
	}
}

// NewLogger builds a slog logger writing to w in the configured format.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
	}
	return l, nil
}

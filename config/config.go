// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the exchange configuration.
//
// Values are resolved in order: defaults, then the YAML file, then environment
// variables. Environment variable names are the prefix followed by the
// upper-case path of the field, e.g. A2A_STORAGE_REDIS_ADDR.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/server"
	"github.com/go-a2a/a2a-exchange/storage/codec"
	"github.com/go-a2a/a2a-exchange/storage/factory"
)

// DefaultEnvPrefix is the environment variable prefix used by [NewLoader].
const DefaultEnvPrefix = "A2A"

// Config is the complete exchange configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server" env:"SERVER"`
	Storage factory.Config `yaml:"storage" env:"STORAGE"`
	Auth    AuthConfig     `yaml:"auth" env:"AUTH"`
	Log     LogConfig      `yaml:"log" env:"LOG"`
	Agent   a2a.AgentCard  `yaml:"agent"`
}

// ServerConfig configures the HTTP binding.
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	Endpoint        string        `yaml:"endpoint" env:"ENDPOINT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" env:"MAX_BODY_BYTES"`
}

// AuthConfig enables bearer token verification when Secret is set.
type AuthConfig struct {
	Secret string `yaml:"secret" env:"SECRET"`
	Issuer string `yaml:"issuer" env:"ISSUER"`
}

// Enabled reports whether requests must carry a bearer token.
func (c AuthConfig) Enabled() bool {
	return c.Secret != ""
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level" env:"LEVEL"`
	// Format is json or text.
	Format string `yaml:"format" env:"FORMAT"`
}

// SlogLevel returns the configured level. Unknown levels fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Endpoint:        server.DefaultEndpoint,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    server.DefaultMaxBodyBytes,
		},
		Storage: factory.Config{
			Type:  factory.TypeMemory,
			Codec: codec.NameJSON,
		},
		Auth: AuthConfig{
			Issuer: "a2a-exchange",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Agent: *server.DefaultAgentCard(),
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr cannot be empty"))
	}
	if !strings.HasPrefix(c.Server.Endpoint, "/") {
		errs = append(errs, fmt.Errorf("server.endpoint must start with /: %q", c.Server.Endpoint))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server.max_body_bytes must be positive"))
	}
	switch c.Storage.Type {
	case "", factory.TypeMemory, factory.TypeRedis, factory.TypeSQL:
	default:
		errs = append(errs, fmt.Errorf("unsupported storage.type: %q", c.Storage.Type))
	}
	if _, err := codec.ByName(c.Storage.Codec); err != nil {
		errs = append(errs, fmt.Errorf("storage.codec: %w", err))
	}
	if c.Storage.Type == factory.TypeRedis && c.Storage.Redis.Addr == "" {
		errs = append(errs, errors.New("storage.redis.addr is required for the redis backend"))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unsupported log.format: %q", c.Log.Format))
	}
	if err := c.Agent.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("agent: %w", err))
	}

	return errors.Join(errs...)
}

// Loader reads a [Config] from a YAML file and the environment.
type Loader struct {
	path      string
	envPrefix string
	lookupEnv func(string) (string, bool)
}

// NewLoader returns a Loader using [DefaultEnvPrefix] and the process environment.
func NewLoader() *Loader {
	return &Loader{
		envPrefix: DefaultEnvPrefix,
		lookupEnv: os.LookupEnv,
	}
}

// WithPath sets the YAML file to read. A missing file is not an error.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithLookupEnv replaces the environment lookup.
func (l *Loader) WithLookupEnv(lookup func(string) (string, bool)) *Loader {
	l.lookupEnv = lookup
	return l
}

// Load resolves and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.path != "" {
		if err := l.loadFile(cfg); err != nil {
			return nil, err
		}
	}
	if err := l.loadEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config) error {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", l.path, err)
	}
	return nil
}

// loadEnv walks the struct fields carrying an env tag.
func (l *Loader) loadEnv(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		tag := t.Field(i).Tag.Get("env")
		if tag == "" || tag == "-" {
			continue
		}

		key := prefix + "_" + tag
		if field.Kind() == reflect.Struct {
			if err := l.loadEnv(field, key); err != nil {
				return err
			}
			continue
		}

		value, ok := l.lookupEnv(key)
		if !ok || value == "" {
			continue
		}
		if err := setField(field, value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

var durationType = reflect.TypeFor[time.Duration]()

func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

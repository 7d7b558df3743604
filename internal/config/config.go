// Package config loads the client configuration from KOISHOP_* environment
// variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "KOISHOP_"

// Форматы логов
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the client configuration
type Config struct {
	// ServerURL - базовый адрес REST API магазина
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:3000"`

	// DBPath - файл локальной BoltDB (сессия, профиль, корзина)
	DBPath string `env:"DB_PATH" envDefault:"koishop-client.db"`

	// DeviceSecret включает шифрование токенов на диске. Пустое значение - токены хранятся как есть.
	DeviceSecret string `env:"DEVICE_SECRET"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// HTTPTimeout - таймаут транспорта на один HTTP обмен
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

// Load reads the .env files (default ".env"; missing files are ignored)
// and then the process environment. The result is not validated: callers
// apply their overrides first and then call Validate.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	return parse(env.Options{Prefix: EnvPrefix})
}

// FromMap parses the configuration from the given variables instead of the
// process environment. Keys carry the KOISHOP_ prefix.
func FromMap(environment map[string]string) (Config, error) {
	cfg, err := parse(env.Options{Prefix: EnvPrefix, Environment: environment})
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate проверяет значения после загрузки и после переопределения флагами
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid server url %q: expected http(s)://host", c.ServerURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Level разбирает LogLevel (debug, info, warn, error)
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewLogger creates the slog logger described by the configuration
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

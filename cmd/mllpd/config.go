package main

import (
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/Zereker/mllp"
)

// Config is the mllpd configuration, loaded from a YAML file.
type Config struct {
	Listen         string `yaml:"listen"`
	Charset        string `yaml:"charset"`
	MaxMessageSize int    `yaml:"max_message_size"`
	IdleTimeout    string `yaml:"idle_timeout"`
	ChunkedDecode  bool   `yaml:"chunked_decode"`
	Ack            bool   `yaml:"ack"`
	Log            Log    `yaml:"log"`

	idleTimeout time.Duration
}

// Log configures logging output.
type Log struct {
	Level string `yaml:"level"`
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:2575"
	}
	if c.Charset == "" {
		c.Charset = "UTF-8"
	}
	if c.IdleTimeout == "" {
		c.IdleTimeout = "30s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	// charset problems must surface here, not on the first frame
	if _, err := mllp.LookupCharset(c.Charset); err != nil {
		return err
	}

	if c.MaxMessageSize < 0 {
		return errors.New("max_message_size must not be negative")
	}

	d, err := time.ParseDuration(c.IdleTimeout)
	if err != nil {
		return errors.Wrap(err, "parse idle_timeout")
	}
	if d <= 0 {
		return errors.New("idle_timeout must be positive")
	}
	c.idleTimeout = d

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.Log.Level) {
		return errors.Errorf("log level must be one of %v", validLevels)
	}

	return nil
}

// logLevel maps the configured level name to a slog level.
func (c *Config) logLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// codec builds the MLLP codec described by the configuration.
func (c *Config) codec() (*mllp.Codec, error) {
	opts := []mllp.CodecOption{mllp.CharsetNameOption(c.Charset)}
	if c.ChunkedDecode {
		opts = append(opts, mllp.ChunkedDecodeOption())
	}
	return mllp.NewCodec(opts...)
}

package internal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of an interpreter session
type Config struct {
	LogLevel     string `yaml:"log_level"`
	Color        bool   `yaml:"color"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	Prompt       string `yaml:"prompt"`
	// HistoryFile stores prompt inputs when set
	HistoryFile string `yaml:"history_file"`
}

const defaultMaxCallDepth = 1024

var errNegativeCallDepth = errors.New("max_call_depth must not be negative")

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() Config {
	return Config{
		LogLevel:     "warning",
		Color:        true,
		MaxCallDepth: defaultMaxCallDepth,
		Prompt:       "> ",
	}
}

// LoadConfig reads a YAML file on top of the defaults.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that the YAML decoder accepts but the interpreter can't use
func (c Config) Validate() error {
	if c.MaxCallDepth < 0 {
		return errNegativeCallDepth
	}
	_, err := logrus.ParseLevel(c.LogLevel)
	return err
}

// NewLogger builds a logger writing to w at the configured level
func (c Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !c.Color,
	})
	return logger, nil
}

package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/limaJavier/permuta/pkg/avoidance"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Workers      int    `mapstructure:"workers"`        // Size of the worker pool building each level
	MaxChunkSize int    `mapstructure:"max_chunk_size"` // Maximum entries handed to a worker at once
	LogLevel     string `mapstructure:"log_level"`      // debug, info, warn or error
	Development  bool   `mapstructure:"development"`    // Human readable logs
}

func Default() Config {
	return Config{
		Workers:      runtime.NumCPU(),
		MaxChunkSize: avoidance.DefaultMaxChunkSize,
		LogLevel:     "info",
	}
}

// Load reads a YAML (or JSON) file; fields left out keep their default values
func Load(file string) (Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}
	return Parse(bytes)
}

func Parse(bytes []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("cannot parse config: %w", err)
	}

	config := Default()
	if err := mapstructure.Decode(raw, &config); err != nil {
		return Config{}, fmt.Errorf("cannot decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config Config) Validate() error {
	if config.Workers < 1 {
		return fmt.Errorf("workers must be positive: %v", config.Workers)
	} else if config.MaxChunkSize < 1 {
		return fmt.Errorf("max_chunk_size must be positive: %v", config.MaxChunkSize)
	} else if _, err := zapcore.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// ClassOptions turns the configuration into builder options
func (config Config) ClassOptions(logger *zap.Logger) []avoidance.Option {
	return []avoidance.Option{
		avoidance.WithWorkers(config.Workers),
		avoidance.WithMaxChunkSize(config.MaxChunkSize),
		avoidance.WithLogger(logger),
	}
}

func (config Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

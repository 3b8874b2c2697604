// Package config provides configuration loading and management for
// masks2zarr. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"masks2zarr/pkg/zarr"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Compressor selects the chunk codec
	Compressor struct {
		// ID is the codec id: zstd, zlib or none
		ID string `yaml:"id"`

		// Level is the codec compression level; 0 uses the codec default
		Level int `yaml:"level"`
	} `yaml:"compressor"`

	// StrictBitBuffers fails on mask bit buffers shorter than the
	// declared rectangle instead of silently truncating
	StrictBitBuffers bool `yaml:"strictBitBuffers"`

	// CheckOverlaps aborts a save when two objects claim the same pixel
	CheckOverlaps bool `yaml:"checkOverlaps"`

	// Verbose controls the level of logging output
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Compressor.ID = zarr.CompressorZstd
	cfg.Compressor.Level = 0

	cfg.StrictBitBuffers = false
	cfg.CheckOverlaps = true
	cfg.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// CompressorConfig validates the configured codec and returns the
// store-level compressor configuration, nil when chunks are stored raw.
func (c *Config) CompressorConfig() (*zarr.CompressorConfig, error) {
	return zarr.NewCompressor(c.Compressor.ID, c.Compressor.Level)
}

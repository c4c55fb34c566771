// Package config provides configuration types and defaults for skinstore.
package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/skinstore/internal/fsutil"
	"github.com/zjrosen/skinstore/internal/log"
)

// Corrupt store policies.
const (
	CorruptFail  = "fail"  // refuse to start on an undecodable store
	CorruptReset = "reset" // start with an empty registry and overwrite on flush
)

// Config holds all configuration options for skinstore.
type Config struct {
	// DataDir is the root that relative store, image and geometry paths
	// resolve against. Empty means the working directory.
	DataDir        string    `mapstructure:"data_dir" yaml:"data_dir"`
	StoreFile      string    `mapstructure:"store_file" yaml:"store_file"`
	LiveSlot       string    `mapstructure:"live_slot" yaml:"live_slot"`
	GeometryPrefix string    `mapstructure:"geometry_prefix" yaml:"geometry_prefix"`
	CorruptStore   string    `mapstructure:"corrupt_store" yaml:"corrupt_store"` // "fail" (default) or "reset"
	Log            LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig holds debug log options.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		StoreFile:      "skinList.dat",
		LiveSlot:       "@live",
		GeometryPrefix: "geometry.",
		CorruptStore:   CorruptFail,
		Log: LogConfig{
			File:  "debug.log",
			Level: "debug",
		},
	}
}

// Validate checks the configuration for values the store cannot work with.
func Validate(c Config) error {
	if c.StoreFile == "" {
		return fmt.Errorf("store_file is required")
	}
	if c.LiveSlot == "" {
		return fmt.Errorf("live_slot is required")
	}
	switch c.CorruptStore {
	case CorruptFail, CorruptReset:
	default:
		return fmt.Errorf("corrupt_store must be %q or %q, got %q", CorruptFail, CorruptReset, c.CorruptStore)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Marshal renders c as YAML.
func Marshal(c Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# skinstore configuration

# Directory relative paths resolve against (default: current directory)
# data_dir: /srv/server

# Registry file, relative to data_dir
store_file: skinList.dat

# Registry key holding the current skin between runs
live_slot: "@live"

# Prefix enforced on geometry names given to "load"
geometry_prefix: geometry.

# What to do when the registry file cannot be decoded:
#   fail  - refuse to run (default)
#   reset - start empty; the corrupt file is replaced on the next flush
corrupt_store: fail

# Debug log (enabled with --debug or SKINSTORE_DEBUG=1)
log:
  file: debug.log
  level: debug
`
}

// WriteDefaultConfig writes the default config template to configPath.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	if err := fsutil.WriteFileAtomic(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

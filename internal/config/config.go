// Package config defines the complete configuration for correctocr,
// adapted from the teacher's pogo config layer (spec §9.2): one struct
// tree, sensible defaults, and viper-backed loading from file/env/flags.
package config

import (
	"fmt"
	"strings"
)

// Config represents the complete configuration for correctocr. It
// covers every command (align, train, decode, correct, serve) and
// supports loading from configuration files, environment variables,
// and command-line flags (spec §9.2).
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose"   yaml:"verbose"   json:"verbose"`

	Dictionary DictionaryConfig `mapstructure:"dictionary" yaml:"dictionary" json:"dictionary"`
	Align      AlignConfig      `mapstructure:"align"      yaml:"align"      json:"align"`
	Model      ModelConfig      `mapstructure:"model"      yaml:"model"      json:"model"`
	Decode     DecodeConfig     `mapstructure:"decode"     yaml:"decode"     json:"decode"`
	Bins       map[int]string   `mapstructure:"bins"       yaml:"bins"       json:"bins"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"   yaml:"pipeline"   json:"pipeline"`
	Server     ServerConfig     `mapstructure:"server"     yaml:"server"     json:"server"`
}

// DictionaryConfig locates the dictionary D and controls case handling
// (spec §3).
type DictionaryConfig struct {
	Path          string `mapstructure:"path"           yaml:"path"           json:"path"`
	CaseSensitive bool   `mapstructure:"case_sensitive" yaml:"case_sensitive" json:"case_sensitive"`
}

// AlignConfig controls the Needleman-Wunsch aligner (spec §4.1).
type AlignConfig struct {
	AnchorLength int `mapstructure:"anchor_length" yaml:"anchor_length" json:"anchor_length"`
	CellBudget   int `mapstructure:"cell_budget"   yaml:"cell_budget"   json:"cell_budget"`
}

// ModelConfig controls HMM estimation (spec §4.2).
type ModelConfig struct {
	Lambda        float64 `mapstructure:"lambda"         yaml:"lambda"         json:"lambda"`
	ExtensionPath string  `mapstructure:"extension_path" yaml:"extension_path" json:"extension_path"`
}

// DecodeConfig controls k-best decoding and substitution expansion
// (spec §4.3).
type DecodeConfig struct {
	K         int    `mapstructure:"k"          yaml:"k"          json:"k"`
	RulesPath string `mapstructure:"rules_path" yaml:"rules_path" json:"rules_path"`
	CacheSize int    `mapstructure:"cache_size" yaml:"cache_size" json:"cache_size"`
}

// PipelineConfig controls the bounded worker pool fanning out over
// tokens and documents (spec §5).
type PipelineConfig struct {
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers" json:"max_workers"`
}

// ServerConfig controls the HTTP/websocket server (spec §9.4).
type ServerConfig struct {
	Host            string `mapstructure:"host"             yaml:"host"             json:"host"`
	Port            int    `mapstructure:"port"             yaml:"port"             json:"port"`
	TimeoutSec      int    `mapstructure:"timeout_sec"      yaml:"timeout_sec"      json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Dictionary: DictionaryConfig{
			CaseSensitive: false,
		},
		Align: AlignConfig{
			AnchorLength: 5,
			CellBudget:   4_000_000,
		},
		Model: ModelConfig{
			Lambda: 1e-6,
		},
		Decode: DecodeConfig{
			K:         4,
			CacheSize: 4096,
		},
		Bins: map[int]string{
			1: "o", 2: "a", 3: "a", 4: "a", 5: "a",
			6: "a", 7: "a", 8: "a", 9: "a",
		},
		Pipeline: PipelineConfig{
			MaxWorkers: 8,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
	}
}

// Validate checks invariants the rest of the system assumes hold.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.Decode.K <= 0 {
		return fmt.Errorf("invalid decode.k: %d (must be positive)", c.Decode.K)
	}
	if c.Model.Lambda <= 0 {
		return fmt.Errorf("invalid model.lambda: %g (must be positive)", c.Model.Lambda)
	}
	if c.Align.AnchorLength <= 0 {
		return fmt.Errorf("invalid align.anchor_length: %d (must be positive)", c.Align.AnchorLength)
	}
	if c.Pipeline.MaxWorkers <= 0 {
		return fmt.Errorf("invalid pipeline.max_workers: %d (must be positive)", c.Pipeline.MaxWorkers)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	for bin, action := range c.Bins {
		if bin < 1 || bin > 9 {
			return fmt.Errorf("invalid bin number in bins map: %d (must be 1..9)", bin)
		}
		switch action {
		case "o", "k", "d", "a":
		default:
			return fmt.Errorf("invalid policy action %q for bin %d (must be one of o,k,d,a)", action, bin)
		}
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

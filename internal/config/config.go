// Package config loads the conform CLI configuration.
//
// Sources are layered with koanf, later ones winning:
//
//  1. built-in defaults
//  2. an optional YAML file (-config flag, or CONFORM_CONFIG)
//  3. CONFORM_* environment variables
//
// Command-line flags are applied by the caller on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/reoring/conform/i18n"
	"github.com/reoring/conform/internal/logging"
)

// ConfigPathEnvVar names the variable that points at a config file.
const ConfigPathEnvVar = "CONFORM_CONFIG"

const envPrefix = "CONFORM_"

type Config struct {
	Log        LogConfig      `koanf:"log"`
	Output     OutputConfig   `koanf:"output"`
	Validation ValidateConfig `koanf:"validate"`
	Input      InputConfig    `koanf:"input"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OutputConfig struct {
	// Format is text or json.
	Format string `koanf:"format"`
	Color  bool   `koanf:"color"`
	Lang   string `koanf:"lang"`
}

type ValidateConfig struct {
	// MaxRefDepth follows conform.Options: 0 is the default limit, negative
	// disables it.
	MaxRefDepth int `koanf:"max_ref_depth"`
}

type InputConfig struct {
	MaxDepth   int  `koanf:"max_depth"`
	StrictKeys bool `koanf:"strict_keys"`
}

func defaultConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: "warn", Format: "console"},
		Output: OutputConfig{Format: "text", Lang: "en"},
	}
}

// Load builds the configuration. path may be empty, in which case
// CONFORM_CONFIG is consulted; a missing file there is an error only when a
// path was given explicitly.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		if p := os.Getenv(ConfigPathEnvVar); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

var envMappings = map[string]string{
	"log_level":              "log.level",
	"log_format":             "log.format",
	"output_format":          "output.format",
	"output_color":           "output.color",
	"output_lang":            "output.lang",
	"validate_max_ref_depth": "validate.max_ref_depth",
	"input_max_depth":        "input.max_depth",
	"input_strict_keys":      "input.strict_keys",
}

// envTransformFunc maps CONFORM_LOG_LEVEL to log.level and so on. Unknown
// variables (CONFORM_CONFIG included) return "" and are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return envMappings[key]
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	var errs []error
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format: must be json or console, got %q", c.Log.Format))
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		errs = append(errs, fmt.Errorf("output.format: must be text or json, got %q", c.Output.Format))
	}
	if !i18n.Supported(c.Output.Lang) {
		errs = append(errs, fmt.Errorf("output.lang: unsupported language %q", c.Output.Lang))
	}
	if c.Input.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("input.max_depth: must not be negative, got %d", c.Input.MaxDepth))
	}
	return errors.Join(errs...)
}

package config

import (
	"os"
	"time"

	"github.com/shuttle-hq/shuttle-cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value with its provenance.
type ResolvedValue struct {
	// Key is the configuration key.
	Key string
	// Value is the winning value.
	Value string
	// Source indicates where Value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// resolveString applies flag > env > config > default precedence.
func resolveString(key, flagValue, envVar, configValue, defaultValue string) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envVar)},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.value != result.Value {
			result.Shadowed[c.source] = c.value
		}
	}

	return result
}

// ResolveAllOptions contains the raw inputs for ResolveAll.
type ResolveAllOptions struct {
	// ConfigFlag is the --config flag value.
	ConfigFlag string
	// APIURLFlag is the --api-url flag value.
	APIURLFlag string
	// APIKeyFlag is the --api-key flag value.
	APIKeyFlag string
	// Config is the loaded config file, may be nil.
	Config *Config
}

// ResolvedConfig holds every resolved configuration value.
type ResolvedConfig struct {
	ConfigPath   ResolvedValue
	APIURL       ResolvedValue
	APIKey       ResolvedValue
	GitBinary    ResolvedValue
	FetchTimeout time.Duration
}

// ResolveAll resolves all configuration values using flag > env > config > default.
// Environment values were already merged into Config by the loader; they are
// re-read here only so that provenance is reported correctly.
func ResolveAll(opts ResolveAllOptions) *ResolvedConfig {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	defaultPath := ""
	if paths, err := DefaultPaths(); err == nil {
		defaultPath = paths.ConfigFile
	}

	resolved := &ResolvedConfig{
		ConfigPath: resolveString("config", opts.ConfigFlag, "SHUTTLE_CONFIG", "", defaultPath),
		APIURL:     resolveString("apiUrl", opts.APIURLFlag, "SHUTTLE_API_URL", cfg.APIURL, DefaultAPIURL),
		APIKey:     resolveString("apiKey", opts.APIKeyFlag, "SHUTTLE_API_KEY", cfg.APIKey, ""),
		GitBinary:  resolveString("git.binary", "", "SHUTTLE_GIT", cfg.Git.Binary, "git"),
	}

	resolved.FetchTimeout = cfg.Fetch.Timeout
	if resolved.FetchTimeout <= 0 {
		resolved.FetchTimeout = DefaultFetchTimeout
	}

	return resolved
}

// Values returns the resolved string values, for logging.
func (r *ResolvedConfig) Values() []ResolvedValue {
	key := r.APIKey
	if key.Value != "" {
		key.Value = "<redacted>"
		key.Shadowed = nil
	}
	return []ResolvedValue{r.ConfigPath, r.APIURL, key, r.GitBinary}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}

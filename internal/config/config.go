// Package config provides configuration loading and management.
package config

import "time"

// DefaultAPIURL is the platform API endpoint used when nothing else is configured.
const DefaultAPIURL = "https://api.shuttle.dev"

// DefaultFetchTimeout bounds how long a template fetch may run.
const DefaultFetchTimeout = 2 * time.Minute

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// GitConfig contains settings for fetching git-hosted templates.
type GitConfig struct {
	// Binary is the git executable used for cloning.
	// Env: SHUTTLE_GIT, Default: "git" from PATH
	Binary string `mapstructure:"binary" yaml:"binary,omitempty"`
}

// FetchConfig contains template fetch settings.
type FetchConfig struct {
	// Timeout bounds a single template fetch.
	// Env: SHUTTLE_FETCH_TIMEOUT, Default: 2m
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty" validate:"gte=0"`
}

// Config represents the Shuttle CLI configuration.
// Loaded from ~/.shuttle/config.yaml.
type Config struct {
	// APIURL is the platform API endpoint.
	// Env: SHUTTLE_API_URL
	APIURL string `mapstructure:"apiUrl" yaml:"apiUrl,omitempty" validate:"omitempty,url"`

	// APIKey authenticates platform API requests.
	// Env: SHUTTLE_API_KEY
	APIKey string `mapstructure:"apiKey" yaml:"apiKey,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`

	// Git contains settings for git-hosted templates.
	Git GitConfig `mapstructure:"git" yaml:"git,omitempty"`

	// Fetch contains template fetch settings.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `shuttle config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		APIURL: DefaultAPIURL,
		Log: LogConfig{
			Timestamps: boolPtr(true),
		},
		Git: GitConfig{
			Binary: "git",
		},
		Fetch: FetchConfig{
			Timeout: DefaultFetchTimeout,
		},
	}
}

// WithDefaults returns a copy of c with empty fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.APIURL == "" {
		out.APIURL = def.APIURL
	}
	if out.Git.Binary == "" {
		out.Git.Binary = def.Git.Binary
	}
	if out.Fetch.Timeout == 0 {
		out.Fetch.Timeout = def.Fetch.Timeout
	}
	return &out
}

func boolPtr(b bool) *bool {
	return &b
}

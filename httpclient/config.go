package httpclient

import (
	"net/url"
	"time"

	apperrors "github.com/kbukum/skyhubkit/errors"
)

const (
	defaultTimeout = 15 * time.Second
)

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds every request. Defaults to 15s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// SensitiveHeaders are masked when a request is dumped in debug mode.
	SensitiveHeaders []string `yaml:"sensitive_headers" mapstructure:"sensitive_headers"`

	// MaxDebugBodyBytes caps how much of a body a debug dump prints.
	MaxDebugBodyBytes int `yaml:"max_debug_body_bytes" mapstructure:"max_debug_body_bytes"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxDebugBodyBytes <= 0 {
		c.MaxDebugBodyBytes = 4 << 10
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.InvalidInput("timeout", "timeout must be positive")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return apperrors.InvalidFormat("base_url", "absolute http(s) URL")
		}
	}
	return nil
}

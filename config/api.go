package config

import (
	"github.com/kbukum/skyhubkit/redact"
	"github.com/kbukum/skyhubkit/validation"
	"github.com/kbukum/skyhubkit/version"
)

const (
	// DefaultBaseURL is the platform endpoint used when none is configured.
	DefaultBaseURL = "https://api.skyhub.com.br"
	// DefaultTimeout is the request timeout in seconds.
	DefaultTimeout = 15
)

// HeaderNames are the header keys credentials are sent under.
type HeaderNames struct {
	UserEmail         string `yaml:"user_email" mapstructure:"user_email"`
	APIKey            string `yaml:"api_key" mapstructure:"api_key"`
	AccountManagerKey string `yaml:"account_manager_key" mapstructure:"account_manager_key"`
}

// APIConfig configures access to the platform API.
type APIConfig struct {
	BaseURL           string            `yaml:"base_url" mapstructure:"base_url" validate:"required,http_url"`
	Timeout           int               `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	UserEmail         string            `yaml:"user_email" mapstructure:"user_email" validate:"omitempty,email"`
	APIKey            string            `yaml:"api_key" mapstructure:"api_key"`
	AccountManagerKey string            `yaml:"account_manager_key" mapstructure:"account_manager_key"`
	HeaderNames       HeaderNames       `yaml:"header_names" mapstructure:"header_names"`
	Headers           map[string]string `yaml:"headers" mapstructure:"headers"`
	Debug             bool              `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults fills in the platform endpoint, timeout and header names.
func (c *APIConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HeaderNames.UserEmail == "" {
		c.HeaderNames.UserEmail = redact.HeaderUserEmail
	}
	if c.HeaderNames.APIKey == "" {
		c.HeaderNames.APIKey = redact.HeaderAPIKey
	}
	if c.HeaderNames.AccountManagerKey == "" {
		c.HeaderNames.AccountManagerKey = redact.HeaderAccountManagerKey
	}
}

// Validate checks field formats and that the credential header names differ.
func (c *APIConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return validation.New().
		Distinct("header_names", c.SensitiveHeaders()).
		Error()
}

// SensitiveHeaders returns the header names whose values are masked in logs.
func (c *APIConfig) SensitiveHeaders() []string {
	names := make([]string, 0, 3)
	for _, n := range []string{c.HeaderNames.UserEmail, c.HeaderNames.APIKey, c.HeaderNames.AccountManagerKey} {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// DefaultHeaders builds the header mapping sent with every request.
// Credentials that are not configured are omitted. Entries in Headers win.
func (c *APIConfig) DefaultHeaders() map[string]string {
	h := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"User-Agent":   version.UserAgent(),
	}
	put := func(name, value string) {
		if name != "" && value != "" {
			h[name] = value
		}
	}
	put(c.HeaderNames.UserEmail, c.UserEmail)
	put(c.HeaderNames.APIKey, c.APIKey)
	put(c.HeaderNames.AccountManagerKey, c.AccountManagerKey)
	for k, v := range c.Headers {
		h[k] = v
	}
	return h
}

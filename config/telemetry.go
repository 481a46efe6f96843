package config

import "time"

// Telemetry defaults.
const (
	DefaultTelemetryEndpoint = "localhost:4318"
	DefaultTelemetryInterval = 15 * time.Second
)

// TelemetryConfig controls OTLP/HTTP export of request spans and dispatch
// metrics.
//
//	telemetry:
//	  enabled: true
//	  endpoint: collector:4318
//	  sample_rate: 0.25
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the fraction of requests traced. Zero means all.
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills in the collector endpoint, sample rate and export
// interval.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultTelemetryEndpoint
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1
	}
	if c.Interval == 0 {
		c.Interval = DefaultTelemetryInterval
	}
}

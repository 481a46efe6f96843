package config

import (
	"github.com/kbukum/skyhubkit/errors"
	"github.com/kbukum/skyhubkit/logger"
	"github.com/kbukum/skyhubkit/observability"
	"github.com/kbukum/skyhubkit/util"
	"github.com/kbukum/skyhubkit/validation"
	"github.com/kbukum/skyhubkit/version"
)

// Environments a client may run in.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// ServiceConfig describes the process embedding the SDK. Its name, version
// and environment label logs and telemetry.
type ServiceConfig struct {
	Name        string          `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string          `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string          `yaml:"version" mapstructure:"version"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Telemetry   TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills in the environment, version, logging and telemetry
// defaults.
func (c *ServiceConfig) ApplyDefaults() {
	c.Environment = util.Coalesce(c.Environment, EnvDevelopment)
	c.Version = util.Coalesce(c.Version, version.GetShortVersion())
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks the service section, including logging.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.Validation(err.Error()).WithCause(err)
	}
	return nil
}

// TracerConfig returns the tracer settings for this service.
func (c *ServiceConfig) TracerConfig() observability.TracerConfig {
	return observability.TracerConfig{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Telemetry.Endpoint,
		Insecure:       c.Telemetry.Insecure,
		SampleRate:     c.Telemetry.SampleRate,
	}
}

// MeterConfig returns the meter settings for this service.
func (c *ServiceConfig) MeterConfig() observability.MeterConfig {
	return observability.MeterConfig{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Telemetry.Endpoint,
		Insecure:       c.Telemetry.Insecure,
		Interval:       c.Telemetry.Interval,
	}
}

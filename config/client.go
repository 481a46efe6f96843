package config

// ClientConfig is the full configuration of an SDK client process.
//
//	name: order-sync
//	environment: production
//	logging:
//	  level: info
//	  components:
//	    audit: warn
//	api:
//	  user_email: seller@store.com
//	  api_key: ...
type ClientConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	API           APIConfig `yaml:"api" mapstructure:"api"`
}

// ApplyDefaults applies defaults to the service and API sections.
func (c *ClientConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.API.ApplyDefaults()
}

// Validate validates the service and API sections.
func (c *ClientConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return c.API.Validate()
}

// Load reads, defaults and validates a ClientConfig. serviceName picks the
// config file and is the default Name.
func Load(serviceName string, opts ...LoaderOption) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

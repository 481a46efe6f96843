// Package config loads SDK client configuration.
//
// Settings come from a YAML file, then a .env file, then the process
// environment. Environment variables carry the SKYHUB prefix and mirror the
// YAML path, so SKYHUB_API_API_KEY sets api.api_key and
// SKYHUB_LOGGING_LEVEL sets logging.level. Only keys the config declares are
// read; unrelated variables are ignored.
//
// Without an explicit file the loader looks for <name>.yml, then
// skyhub.yml, in ./ and then ./config.
//
// # Usage
//
//	cfg, err := config.Load("order-sync")
//	d, err := dispatcher.NewFromClientConfig(ctx, cfg)
package config

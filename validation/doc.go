// Package validation validates SDK configuration.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as
// an *errors.AppError with code INVALID_INPUT and per-field details.
//
// # Struct Tag Validation
//
//	type APIConfig struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Check(timeout >= 0, "timeout", "must not be negative")
//	err := v.Error()
package validation

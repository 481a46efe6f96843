package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/skyhubkit/errors"
)

type credentials struct {
	UserEmail string `mapstructure:"user_email" validate:"omitempty,email"`
	APIKey    string `mapstructure:"api_key" validate:"required"`
}

type apiSettings struct {
	BaseURL     string      `mapstructure:"base_url" validate:"required,http_url"`
	Timeout     int         `mapstructure:"timeout" validate:"gte=0"`
	Credentials credentials `mapstructure:"credentials"`
	Internal    string      `validate:"omitempty,oneof=a b"`
}

func TestValidate_Valid(t *testing.T) {
	cfg := apiSettings{
		BaseURL:     "https://api.skyhub.com.br",
		Timeout:     15,
		Credentials: credentials{UserEmail: "seller@store.com", APIKey: "k"},
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ReportsConfigKeys(t *testing.T) {
	cfg := apiSettings{
		BaseURL:     "not a url",
		Timeout:     -1,
		Credentials: credentials{UserEmail: "nope"},
		Internal:    "c",
	}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}

	for _, want := range []string{
		"base_url: must be a valid URL",
		"timeout: must be greater than or equal to 0",
		"credentials.user_email: must be a valid email address",
		"credentials.api_key: is required",
		"internal: must be one of: a b",
	} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected %q in %q", want, appErr.Message)
		}
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 5 {
		t.Errorf("expected 5 field errors, got %v", appErr.Details["fields"])
	}
}

func TestValidate_RangeAndAddressMessages(t *testing.T) {
	type exporter struct {
		Endpoint   string  `mapstructure:"endpoint" validate:"omitempty,hostname_port"`
		SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	}

	err := Validate(exporter{Endpoint: "collector", SampleRate: 1.5})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	for _, want := range []string{
		"endpoint: must be a host:port address",
		"sample_rate: must be less than or equal to 1",
	} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected %q in %q", want, appErr.Message)
		}
	}

	if err := Validate(exporter{Endpoint: "collector:4318", SampleRate: 0.5}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_NonStruct(t *testing.T) {
	if err := Validate("string"); err == nil {
		t.Fatal("expected error for non-struct input")
	}
}

func TestValidator_Programmatic(t *testing.T) {
	v := New()
	v.Required("api_key", "  ").
		Check(false, "timeout", "must not be negative").
		Distinct("sensitive_headers", []string{"X-Api-Key", "", "X-Api-Key"})

	if !v.HasErrors() || len(v.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %v", v.Errors())
	}
	appErr := v.Validate()
	if appErr == nil || !strings.Contains(appErr.Message, `duplicate value "X-Api-Key"`) {
		t.Errorf("unexpected error %v", appErr)
	}
}

func TestValidator_ErrorNilWhenClean(t *testing.T) {
	v := New().Required("api_key", "k").Distinct("h", []string{"A", "B", "", ""})
	if err := v.Error(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("BaseURL"); got != "base_u_r_l" {
		t.Errorf("unexpected %q", got)
	}
	if got := toSnakeCase("Timeout"); got != "timeout" {
		t.Errorf("unexpected %q", got)
	}
}

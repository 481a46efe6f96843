package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: "json"}
	return NewWithWriter(cfg, "skyhub", &buf), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: "json", Output: "stdout"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("env-svc")
	if !l.DebugEnabled() {
		t.Error("expected debug level from LOG_LEVEL")
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.Info("request sent", Fields(FieldRequestID, 1234567890, FieldMethod, "GET"))

	m := decodeLine(t, buf)
	if m["message"] != "request sent" {
		t.Errorf("expected message, got %v", m["message"])
	}
	if m["service"] != "skyhub" {
		t.Errorf("expected service=skyhub, got %v", m["service"])
	}
	if m[FieldMethod] != "GET" {
		t.Errorf("expected method=GET, got %v", m[FieldMethod])
	}
	if m[FieldRequestID] != float64(1234567890) {
		t.Errorf("expected request_id, got %v", m[FieldRequestID])
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, "warn")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected warn to be written")
	}
	if l.DebugEnabled() {
		t.Error("expected debug disabled at warn level")
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithComponent("dispatcher").Info("x")
	if decodeLine(t, buf)[FieldComponent] != "dispatcher" {
		t.Error("expected component field")
	}
}

func TestWithContext(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	ctx := ContextWithRequestID(context.Background(), 4242424242)
	l.WithContext(ctx).Info("x")
	if decodeLine(t, buf)[FieldRequestID] != float64(4242424242) {
		t.Error("expected request_id from context")
	}

	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected same logger when context carries no request id")
	}
}

func TestRequestIDFromContext(t *testing.T) {
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("expected no id in empty context")
	}
	id, ok := RequestIDFromContext(ContextWithRequestID(context.Background(), 7))
	if !ok || id != 7 {
		t.Errorf("expected 7, got %d (ok=%v)", id, ok)
	}
}

func TestWithFieldsAndError(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithFields(map[string]interface{}{"a": "b"}).WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, buf)
	if m["a"] != "b" {
		t.Errorf("expected a=b, got %v", m["a"])
	}
	if m["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", m["error"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	if l.DebugEnabled() {
		t.Error("nop logger should not enable debug")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	orig := globalLogger
	defer func() { globalLogger = orig }()

	l, buf := newBufferLogger(t, "info")
	SetGlobalLogger(l)
	Info("global")
	if !strings.Contains(buf.String(), "global") {
		t.Error("expected package-level Info to use global logger")
	}
}

func TestGetUnregistered(t *testing.T) {
	orig := globalLogger
	defer func() { globalLogger = orig }()

	l, buf := newBufferLogger(t, "info")
	SetGlobalLogger(l)
	Get("audit").Info("x")
	if decodeLine(t, buf)[FieldComponent] != "audit" {
		t.Error("expected component-tagged global logger")
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := Nop()
	Register("custom", l)
	if Get("custom") != l {
		t.Error("expected registered logger")
	}
}

func TestInitAppliesConfig(t *testing.T) {
	orig := globalLogger
	defer func() {
		globalLogger = orig
		registerLevels(orig, nil)
	}()

	Init(Config{Level: "debug", Output: "stderr", Components: map[string]string{ComponentAudit: "warn"}}, "order-sync")

	if !GetGlobalLogger().DebugEnabled() {
		t.Error("expected configured debug level on the global logger")
	}
	audit := Get(ComponentAudit)
	if audit.DebugEnabled() {
		t.Error("expected audit logger at warn")
	}
	if got := audit.GetLogger().GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected warn, got %v", got)
	}
	if !Get(ComponentDispatcher).DebugEnabled() {
		t.Error("expected components without override to follow the global level")
	}
}

func TestRegisterLevels(t *testing.T) {
	defer registerLevels(GetGlobalLogger(), nil)

	base, buf := newBufferLogger(t, "info")
	Register("stale", Nop())
	registerLevels(base, map[string]string{ComponentDispatcher: "debug", "broken": "loud"})

	if _, ok := components.loggers["stale"]; ok {
		t.Error("expected earlier registrations to be cleared")
	}
	if _, ok := components.loggers["broken"]; ok {
		t.Error("expected unknown level to be skipped")
	}

	Get(ComponentDispatcher).Debug("dispatch")
	m := decodeLine(t, buf)
	if m[FieldComponent] != ComponentDispatcher || m["level"] != "debug" {
		t.Errorf("unexpected entry %v", m)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"console", Config{Level: "info", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
		{"component level", Config{Level: "info", Format: "json", Components: map[string]string{"audit": "warn"}}, false},
		{"bad component level", Config{Level: "info", Format: "json", Components: map[string]string{"audit": "loud"}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("expected err=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "skyhub", &buf)
	l.Info("hello")
	if !strings.Contains(buf.String(), "[SKY][INF]") {
		t.Errorf("expected service tag and level, got %q", buf.String())
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("dispatch", errors.New("x"))
	if ef[FieldOperation] != "dispatch" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields: %v", ef)
	}
	df := DurationFields("dispatch", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration: %v", df[FieldDuration])
	}
}

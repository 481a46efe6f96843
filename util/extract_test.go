package util

import "testing"

func TestIsEmpty(t *testing.T) {
	var nilPtr *int
	one := 1
	type headers map[string]string

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"string", "x", false},
		{"false", false, true},
		{"true", true, false},
		{"int zero", 0, true},
		{"int64 zero", int64(0), true},
		{"float zero", 0.0, true},
		{"int", 15, false},
		{"empty slice", []string{}, true},
		{"slice", []string{"a"}, false},
		{"empty map", map[string]string{}, true},
		{"named empty map", headers{}, true},
		{"named map", headers{"A": "1"}, false},
		{"empty array", [0]int{}, true},
		{"nil pointer", nilPtr, true},
		{"pointer", &one, false},
		{"struct", struct{}{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEmpty(tc.v); got != tc.want {
				t.Errorf("IsEmpty(%#v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	m := map[string]any{
		"headers": map[string]string{"X-Api-Key": "k"},
		"timeout": 15,
		"debug":   false,
		"empty":   "",
		"zero":    0,
	}

	if got := Extract(m, "timeout", false); got != 15 {
		t.Errorf("expected 15, got %v", got)
	}
	if got := Extract(m, "missing", false); got != false {
		t.Errorf("expected default false, got %v", got)
	}
	if got := Extract(m, "debug", "def"); got != "def" {
		t.Errorf("expected default for false value, got %v", got)
	}
	if got := Extract(m, "empty", "def"); got != "def" {
		t.Errorf("expected default for empty string, got %v", got)
	}
	if got := Extract(m, "zero", 30); got != 30 {
		t.Errorf("expected default for zero, got %v", got)
	}
	h, ok := Extract(m, "headers", nil).(map[string]string)
	if !ok || h["X-Api-Key"] != "k" {
		t.Errorf("expected headers map, got %v", h)
	}
}

func TestExtract_NilMap(t *testing.T) {
	if got := Extract(nil, "a", "def"); got != "def" {
		t.Errorf("expected default from nil map, got %v", got)
	}
	if HasNonEmpty(nil, "a") {
		t.Error("nil map has no keys")
	}
}

func TestHasNonEmpty(t *testing.T) {
	m := map[string]any{"a": "x", "b": "", "c": nil, "d": []int{1}}
	tests := map[string]bool{"a": true, "b": false, "c": false, "d": true, "missing": false}
	for key, want := range tests {
		if got := HasNonEmpty(m, key); got != want {
			t.Errorf("HasNonEmpty(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestLookup_StrictPresence(t *testing.T) {
	m := map[string]any{"timeout": 0, "name": "svc", "debug": false}

	timeout, ok := Lookup[int](m, "timeout")
	if !ok || timeout != 0 {
		t.Errorf("expected present zero timeout, got %d ok=%v", timeout, ok)
	}
	debug, ok := Lookup[bool](m, "debug")
	if !ok || debug {
		t.Errorf("expected present false, got %v ok=%v", debug, ok)
	}
	if _, ok := Lookup[int](m, "name"); ok {
		t.Error("expected type mismatch to report absent")
	}
	if _, ok := Lookup[string](m, "missing"); ok {
		t.Error("expected missing key to report absent")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "https://api.skyhub.com.br"); got != "https://api.skyhub.com.br" {
		t.Errorf("unexpected %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("expected zero, got %d", got)
	}
}

func TestCloneMap(t *testing.T) {
	src := map[string]string{"A": "1"}
	dst := CloneMap(src)
	dst["B"] = "2"
	if _, ok := src["B"]; ok {
		t.Error("clone must not alias source")
	}
	if CloneMap[string, string](nil) == nil {
		t.Error("expected non-nil map from nil input")
	}
}

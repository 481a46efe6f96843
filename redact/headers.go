package redact

// Header names the platform uses to authenticate an account.
const (
	HeaderUserEmail         = "X-User-Email"
	HeaderAPIKey            = "X-Api-Key"
	HeaderAccountManagerKey = "X-Accountmanager-Key"
)

// DefaultSensitiveHeaders returns the platform credential header names.
func DefaultSensitiveHeaders() []string {
	return []string{HeaderUserEmail, HeaderAPIKey, HeaderAccountManagerKey}
}

// Masker masks a fixed set of header keys. Keys match case-sensitively;
// every other header passes through unchanged however sensitive it looks.
type Masker struct {
	keys     map[string]struct{}
	maskChar rune
	density  float64
}

// NewMasker returns a Masker for the given keys. Empty keys are ignored.
func NewMasker(keys ...string) *Masker {
	m := &Masker{
		keys:     make(map[string]struct{}, len(keys)),
		maskChar: DefaultMaskChar,
		density:  DefaultDensity,
	}
	for _, k := range keys {
		if k != "" {
			m.keys[k] = struct{}{}
		}
	}
	return m
}

// DefaultMasker masks the platform credential headers.
func DefaultMasker() *Masker {
	return NewMasker(DefaultSensitiveHeaders()...)
}

// Keys returns the masked header names.
func (m *Masker) Keys() []string {
	keys := make([]string, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	return keys
}

// IsSensitive reports whether key is masked.
func (m *Masker) IsSensitive(key string) bool {
	_, ok := m.keys[key]
	return ok
}

// MaskHeaders returns a copy of headers with sensitive values masked.
// A nil map is returned as nil.
func (m *Masker) MaskHeaders(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		if m.IsSensitive(k) {
			v = MaskString(v, m.maskChar, m.density)
		}
		out[k] = v
	}
	return out
}

// MaskHeadersOr masks headers, or fallback when headers is empty. This is
// the "mask my defaults" mode: a caller passing nothing gets the masked
// default header set.
func (m *Masker) MaskHeadersOr(headers, fallback map[string]string) map[string]string {
	if len(headers) == 0 {
		return m.MaskHeaders(fallback)
	}
	return m.MaskHeaders(headers)
}

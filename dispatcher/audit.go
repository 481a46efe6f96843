package dispatcher

import (
	"time"

	"github.com/kbukum/skyhubkit/errors"
	"github.com/kbukum/skyhubkit/logger"
	"github.com/kbukum/skyhubkit/redact"
)

// AuditLogger receives one entry before each request is sent and one after
// its outcome is classified. Implementations must not block.
type AuditLogger interface {
	LogRequest(entry RequestLogEntry)
	LogResponse(entry ResponseLogEntry)
}

// RequestLogEntry records an outbound request. Headers and Options carry
// masked credentials; Body is logged as given.
type RequestLogEntry struct {
	RequestID int64
	SessionID string
	Method    string
	URI       string
	Body      any
	Headers   map[string]string
	Options   map[string]any
}

// ResponseLogEntry records the classified outcome of a request.
type ResponseLogEntry struct {
	RequestID    int64
	SessionID    string
	Success      bool
	StatusCode   int
	Headers      map[string]string
	Body         []byte
	ErrorMessage string
	ErrorCode    errors.ErrorCode
	Duration     time.Duration
}

func newResponseLogEntry(sessionID string, r Result, masker *redact.Masker, d time.Duration) ResponseLogEntry {
	entry := ResponseLogEntry{
		RequestID:  r.RequestID(),
		SessionID:  sessionID,
		Success:    r.Success(),
		StatusCode: r.StatusCode(),
		Headers:    masker.MaskHeaders(r.Headers()),
		Body:       r.Body(),
		Duration:   d,
	}
	if exc, ok := r.(*ExceptionResult); ok {
		entry.ErrorMessage = exc.Message()
		entry.ErrorCode = exc.Code()
	}
	return entry
}

// DefaultMaxLogBodyBytes caps how much of a body LogAudit writes.
const DefaultMaxLogBodyBytes = 4096

// LogAudit writes audit entries as structured log lines.
type LogAudit struct {
	log          *logger.Logger
	maxBodyBytes int
}

// NewLogAudit returns a LogAudit writing to l, or to the "audit" logger
// when l is nil.
func NewLogAudit(l *logger.Logger) *LogAudit {
	if l == nil {
		l = logger.Get(logger.ComponentAudit)
	}
	return &LogAudit{log: l, maxBodyBytes: DefaultMaxLogBodyBytes}
}

// WithMaxBodyBytes sets the body cap. Zero or less disables truncation.
func (a *LogAudit) WithMaxBodyBytes(n int) *LogAudit {
	a.maxBodyBytes = n
	return a
}

// LogRequest implements AuditLogger.
func (a *LogAudit) LogRequest(e RequestLogEntry) {
	fields := map[string]interface{}{
		logger.FieldRequestID: e.RequestID,
		logger.FieldSessionID: e.SessionID,
		logger.FieldMethod:    e.Method,
		logger.FieldURI:       e.URI,
		logger.FieldHeaders:   e.Headers,
		logger.FieldOptions:   e.Options,
	}
	if e.Body != nil {
		fields[logger.FieldBody] = a.body(e.Body)
	}
	a.log.Info("skyhub request", fields)
}

// LogResponse implements AuditLogger.
func (a *LogAudit) LogResponse(e ResponseLogEntry) {
	fields := map[string]interface{}{
		logger.FieldRequestID:  e.RequestID,
		logger.FieldSessionID:  e.SessionID,
		logger.FieldSuccessful: e.Success,
		logger.FieldStatus:     e.StatusCode,
		logger.FieldHeaders:    e.Headers,
		logger.FieldDuration:   e.Duration.Milliseconds(),
	}
	if len(e.Body) > 0 {
		fields[logger.FieldBody] = a.body(e.Body)
	}
	if e.Success {
		a.log.Info("skyhub response", fields)
		return
	}
	fields[logger.FieldError] = e.ErrorMessage
	fields[logger.FieldErrorCode] = string(e.ErrorCode)
	a.log.Warn("skyhub request failed", fields)
}

func (a *LogAudit) body(b any) any {
	var s string
	switch v := b.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return b
	}
	return redact.Truncate(s, a.maxBodyBytes)
}

// NopAudit discards all entries.
type NopAudit struct{}

func (NopAudit) LogRequest(RequestLogEntry)   {}
func (NopAudit) LogResponse(ResponseLogEntry) {}

package dispatcher

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kbukum/skyhubkit/httpclient"
)

// recordingAudit keeps every entry and the order they arrived in.
type recordingAudit struct {
	mu        sync.Mutex
	requests  []RequestLogEntry
	responses []ResponseLogEntry
	events    []string
}

func (a *recordingAudit) LogRequest(e RequestLogEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, e)
	a.events = append(a.events, "request")
}

func (a *recordingAudit) LogResponse(e ResponseLogEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = append(a.responses, e)
	a.events = append(a.events, "response")
}

func (a *recordingAudit) record(event string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

type sentRequest struct {
	method string
	uri    string
	opts   RequestOptions
}

// stubTransport returns a fixed outcome and remembers what it was sent.
type stubTransport struct {
	mu    sync.Mutex
	calls []sentRequest
	resp  *httpclient.Response
	err   error
	audit *recordingAudit
}

func (s *stubTransport) Send(_ context.Context, method, uri string, opts RequestOptions) (*httpclient.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, sentRequest{method: method, uri: uri, opts: opts})
	s.mu.Unlock()
	if s.audit != nil {
		s.audit.record("send")
	}
	return s.resp, s.err
}

func (s *stubTransport) last() sentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

// counterSource yields 1000000001, 1000000002, ...
func counterSource() RequestIDSource {
	var n atomic.Int64
	return func() int64 { return MinRequestID + n.Add(1) }
}

func okResponse(body string) *httpclient.Response {
	return &httpclient.Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(body),
	}
}

func newTestDispatcher(t interface{ Fatalf(string, ...any) }, cfg Config, opts ...Option) *Dispatcher {
	d, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

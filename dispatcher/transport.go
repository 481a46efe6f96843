package dispatcher

import (
	"context"
	"time"

	"github.com/kbukum/skyhubkit/httpclient"
)

// Transport sends one request. A failed call returns an error; an error that
// implements PartialResponse() *httpclient.Response may still carry the
// response that caused it. Send must return a non-nil response or a non-nil
// error: returning neither is a programming error and Dispatcher.Request
// panics with an INTERNAL_ERROR *errors.AppError.
type Transport interface {
	Send(ctx context.Context, method, uri string, opts RequestOptions) (*httpclient.Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, method, uri string, opts RequestOptions) (*httpclient.Response, error)

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, method, uri string, opts RequestOptions) (*httpclient.Response, error) {
	return f(ctx, method, uri, opts)
}

// HTTPTransport sends requests through an httpclient.Adapter.
type HTTPTransport struct {
	adapter *httpclient.Adapter
}

// NewHTTPTransport wraps adapter.
func NewHTTPTransport(adapter *httpclient.Adapter) *HTTPTransport {
	return &HTTPTransport{adapter: adapter}
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, method, uri string, opts RequestOptions) (*httpclient.Response, error) {
	return t.adapter.Do(ctx, httpclient.Request{
		Method:  method,
		Path:    uri,
		Headers: opts.Headers,
		Query:   opts.Query,
		Body:    opts.Body,
		Timeout: time.Duration(opts.Timeout) * time.Second,
		Debug:   opts.Debug,
	})
}

// Adapter returns the wrapped adapter.
func (t *HTTPTransport) Adapter() *httpclient.Adapter {
	return t.adapter
}

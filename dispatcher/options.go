package dispatcher

import (
	"github.com/kbukum/skyhubkit/util"
)

// HTTP methods accepted by the platform API.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodHead   = "HEAD"
	MethodDelete = "DELETE"
	MethodPatch  = "PATCH"
)

// Keys of the option mapping recorded in request log entries.
const (
	OptionTimeout = "timeout"
	OptionHeaders = "headers"
	OptionDebug   = "debug"
	OptionBody    = "body"
	OptionQuery   = "query"
)

// RequestOptions is what the transport receives for one call: the merged
// headers, the timeout in seconds, the debug flag and the body.
type RequestOptions struct {
	Timeout int
	Headers map[string]string
	Debug   bool
	Body    any
	Query   map[string]string
}

// Map returns the options as a generic mapping keyed by the Option* names.
// Empty query parameters are left out.
func (o RequestOptions) Map() map[string]any {
	m := map[string]any{
		OptionTimeout: o.Timeout,
		OptionHeaders: util.CloneMap(o.Headers),
		OptionDebug:   o.Debug,
		OptionBody:    o.Body,
	}
	if len(o.Query) > 0 {
		m[OptionQuery] = util.CloneMap(o.Query)
	}
	return m
}

// CallOption adjusts a single Request call.
type CallOption func(*callOptions)

type callOptions struct {
	headers        map[string]string
	replaceHeaders bool
	timeout        *int
	debug          *bool
	query          map[string]string
	requestID      int64
}

// WithHeaders adds headers on top of the dispatcher defaults for this call.
// On a key collision the call-site value wins.
func WithHeaders(h map[string]string) CallOption {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(h))
		}
		for k, v := range h {
			o.headers[k] = v
		}
	}
}

// ReplaceHeaders sends exactly h for this call, ignoring the defaults.
func ReplaceHeaders(h map[string]string) CallOption {
	return func(o *callOptions) {
		o.headers = util.CloneMap(h)
		o.replaceHeaders = true
	}
}

// WithCallTimeout overrides the dispatcher timeout, in seconds, for this call.
func WithCallTimeout(seconds int) CallOption {
	return func(o *callOptions) { o.timeout = &seconds }
}

// WithDebug asks the transport to dump the wire request and response, or
// stops it when the dispatcher was configured with Debug.
func WithDebug(debug bool) CallOption {
	return func(o *callOptions) { o.debug = &debug }
}

// WithQuery sets URL query parameters for this call.
func WithQuery(q map[string]string) CallOption {
	return func(o *callOptions) { o.query = util.CloneMap(q) }
}

// WithRequestID tags the call with id instead of a freshly generated one.
// Use it with GetRequestID to correlate several calls under one id.
func WithRequestID(id int64) CallOption {
	return func(o *callOptions) { o.requestID = id }
}

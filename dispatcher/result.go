package dispatcher

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/skyhubkit/errors"
	"github.com/kbukum/skyhubkit/httpclient"
)

// Result is the classified outcome of one dispatched request. It is either
// a *SuccessResult or an *ExceptionResult; the accessors work on both so
// simple inspection needs no type switch.
type Result interface {
	// RequestID is the id the request and response were logged under.
	RequestID() int64
	// StatusCode is the HTTP status, or 0 when no response arrived.
	StatusCode() int
	// Body is the response body, or nil when no response arrived.
	Body() []byte
	// Headers are the response headers, or nil when no response arrived.
	Headers() map[string]string
	// Raw is the *httpclient.Response for a success and the error for an exception.
	Raw() any
	// Success reports whether the request succeeded.
	Success() bool
	// Err is nil for a success and the transport error for an exception.
	Err() error

	result()
}

// SuccessResult wraps a response the transport accepted.
type SuccessResult struct {
	requestID int64
	response  *httpclient.Response
}

func (r *SuccessResult) RequestID() int64           { return r.requestID }
func (r *SuccessResult) StatusCode() int            { return r.response.StatusCode }
func (r *SuccessResult) Body() []byte               { return r.response.Body }
func (r *SuccessResult) Headers() map[string]string { return r.response.Headers }
func (r *SuccessResult) Raw() any                   { return r.response }
func (r *SuccessResult) Success() bool              { return true }
func (r *SuccessResult) Err() error                 { return nil }
func (r *SuccessResult) result()                    {}

// Response returns the underlying transport response.
func (r *SuccessResult) Response() *httpclient.Response { return r.response }

// ExceptionResult wraps a failed request.
type ExceptionResult struct {
	requestID int64
	err       error
	code      errors.ErrorCode
	partial   *httpclient.Response
}

func (r *ExceptionResult) RequestID() int64 { return r.requestID }
func (r *ExceptionResult) Raw() any         { return r.err }
func (r *ExceptionResult) Success() bool    { return false }
func (r *ExceptionResult) Err() error       { return r.err }
func (r *ExceptionResult) result()          {}

func (r *ExceptionResult) StatusCode() int {
	if r.partial == nil {
		return 0
	}
	return r.partial.StatusCode
}

func (r *ExceptionResult) Body() []byte {
	if r.partial == nil {
		return nil
	}
	return r.partial.Body
}

func (r *ExceptionResult) Headers() map[string]string {
	if r.partial == nil {
		return nil
	}
	return r.partial.Headers
}

// Message is the error message.
func (r *ExceptionResult) Message() string { return r.err.Error() }

// Code classifies the failure.
func (r *ExceptionResult) Code() errors.ErrorCode { return r.code }

// PartialResponse is the response that came with the error, if any.
func (r *ExceptionResult) PartialResponse() *httpclient.Response { return r.partial }

// partialResponder is implemented by transport errors that keep the
// response which caused them.
type partialResponder interface {
	PartialResponse() *httpclient.Response
}

// Classify turns a transport outcome into a Result. A nil error yields a
// SuccessResult; any error yields an ExceptionResult whose partial response
// is taken from the error, or from resp when the error carries none.
// Calling Classify with neither a response nor an error is a programming
// error and panics.
func Classify(requestID int64, resp *httpclient.Response, err error) Result {
	if err == nil {
		if resp == nil {
			panic(errors.Internal(fmt.Errorf("classify request %d: transport returned neither response nor error", requestID)))
		}
		return &SuccessResult{requestID: requestID, response: resp}
	}

	exc := &ExceptionResult{
		requestID: requestID,
		err:       err,
		code:      errors.CodeOf(err),
	}
	var pr partialResponder
	if stderrors.As(err, &pr) {
		exc.partial = pr.PartialResponse()
	}
	if exc.partial == nil {
		exc.partial = resp
	}
	return exc
}

// Decode unmarshals the JSON body of r into a T. It works on both variants,
// so an error payload returned with a 4xx can be decoded too.
func Decode[T any](r Result) (T, error) {
	var v T
	body := r.Body()
	if len(body) == 0 {
		return v, errors.MissingField("body")
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, errors.InvalidFormat("body", "JSON").WithCause(err)
	}
	return v, nil
}

// Package httpclient is the concrete HTTP transport used by the dispatcher.
//
// The Adapter resolves request paths against a base URL, merges default
// headers, encodes bodies, enforces per-request timeouts and classifies
// non-2xx responses into *Error values that still carry the response.
// It does not retry, pool beyond net/http defaults, or follow anything
// other than net/http's standard redirect policy.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.skyhub.com.br",
//	    Timeout: 15 * time.Second,
//	})
//
//	resp, err := adapter.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/orders",
//	})
package httpclient

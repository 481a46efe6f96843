package httpclient

import (
	"context"
	"net/http"

	"github.com/kbukum/skyhubkit/logger"
	"github.com/kbukum/skyhubkit/redact"
)

func (a *Adapter) dumpRequest(ctx context.Context, req *http.Request, body any) {
	fields := logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURI, req.URL.String(),
		logger.FieldHeaders, a.masker.MaskHeaders(flattenHeaders(req.Header)),
	)
	switch b := body.(type) {
	case string:
		fields[logger.FieldBody] = a.truncate([]byte(b))
	case []byte:
		fields[logger.FieldBody] = a.truncate(b)
	}
	a.log.WithContext(ctx).Info("http request", fields)
}

func (a *Adapter) dumpResponse(ctx context.Context, resp *Response) {
	a.log.WithContext(ctx).Info("http response", logger.Fields(
		logger.FieldStatus, resp.StatusCode,
		logger.FieldHeaders, a.masker.MaskHeaders(resp.Headers),
		logger.FieldBody, a.truncate(resp.Body),
	))
}

func (a *Adapter) truncate(b []byte) string {
	return redact.Truncate(string(b), a.config.MaxDebugBodyBytes)
}

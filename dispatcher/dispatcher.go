package dispatcher

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/skyhubkit/config"
	"github.com/kbukum/skyhubkit/httpclient"
	"github.com/kbukum/skyhubkit/logger"
	"github.com/kbukum/skyhubkit/observability"
	"github.com/kbukum/skyhubkit/redact"
	"github.com/kbukum/skyhubkit/util"
	"github.com/kbukum/skyhubkit/validation"
)

const (
	// DefaultBaseURL is used when Config.BaseURL is empty.
	DefaultBaseURL = config.DefaultBaseURL
	// DefaultTimeout is the request timeout in seconds.
	DefaultTimeout = config.DefaultTimeout
)

// Config configures a Dispatcher.
type Config struct {
	// BaseURL is the platform endpoint. Defaults to DefaultBaseURL.
	BaseURL string
	// Headers are sent with every request.
	Headers map[string]string
	// Timeout in seconds. Zero means DefaultTimeout.
	Timeout int
	// Debug turns on transport wire dumps for every call.
	Debug bool
	// SensitiveHeaders are masked in logs. Defaults to the platform
	// credential headers.
	SensitiveHeaders []string
}

func (c *Config) applyDefaults() {
	c.BaseURL = util.Coalesce(c.BaseURL, DefaultBaseURL)
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SensitiveHeaders == nil {
		c.SensitiveHeaders = redact.DefaultSensitiveHeaders()
	}
}

func (c *Config) validate() error {
	err := validation.New().
		Check(c.Timeout >= 0, "timeout", "must not be negative").
		Distinct("sensitive_headers", c.SensitiveHeaders).
		Error()
	if err != nil {
		return err
	}
	hc := c.httpConfig()
	return hc.Validate()
}

func (c *Config) httpConfig() httpclient.Config {
	hc := httpclient.Config{
		Name:             "skyhub",
		BaseURL:          c.BaseURL,
		Timeout:          time.Duration(c.Timeout) * time.Second,
		SensitiveHeaders: c.SensitiveHeaders,
	}
	hc.ApplyDefaults()
	return hc
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithTransport sets the transport. The default is an HTTPTransport built
// on first use.
func WithTransport(t Transport) Option {
	return func(d *Dispatcher) { d.transport = t }
}

// WithHTTPOptions passes options to the default HTTP transport.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(d *Dispatcher) { d.httpOpts = append(d.httpOpts, opts...) }
}

// WithAuditLogger sets the audit collaborator. nil disables auditing.
func WithAuditLogger(a AuditLogger) Option {
	return func(d *Dispatcher) {
		if a == nil {
			a = NopAudit{}
		}
		d.audit = a
	}
}

// WithRequestIDSource replaces the request id generator.
func WithRequestIDSource(src RequestIDSource) Option {
	return func(d *Dispatcher) {
		if src != nil {
			d.newID = src
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) {
		if t != nil {
			d.tracer = t
		}
	}
}

// WithMetrics records dispatch metrics on m.
func WithMetrics(m *observability.DispatchMetrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithLogger sets the dispatcher's operational logger.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// Dispatcher sends requests for one client session. It is safe for
// concurrent use.
type Dispatcher struct {
	baseURL   string
	debug     bool
	sessionID string
	masker    *redact.Masker
	httpCfg   httpclient.Config

	mu        sync.RWMutex
	headers   map[string]string
	timeout   int
	requestID int64

	newID    RequestIDSource
	audit    AuditLogger
	tracer   trace.Tracer
	metrics  *observability.DispatchMetrics
	log      *logger.Logger
	httpOpts []httpclient.Option

	transportOnce sync.Once
	transport     Transport
	transportErr  error

	shutdown []func(context.Context) error
}

// New creates a Dispatcher. A malformed base address or negative timeout
// is reported as an *errors.AppError.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		baseURL:   cfg.BaseURL,
		debug:     cfg.Debug,
		sessionID: uuid.NewString(),
		masker:    redact.NewMasker(cfg.SensitiveHeaders...),
		httpCfg:   cfg.httpConfig(),
		headers:   util.CloneMap(cfg.Headers),
		timeout:   cfg.Timeout,
		newID:     RandomRequestID,
		tracer:    observability.Tracer(observability.InstrumentationName),
		log:       logger.Get(logger.ComponentDispatcher),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.audit == nil {
		d.audit = NewLogAudit(nil)
	}

	d.log.Debug("dispatcher created", logger.Fields(
		"base_url", d.baseURL,
		"timeout", d.timeout,
		logger.FieldSessionID, d.sessionID,
	))
	return d, nil
}

// NewFromConfig creates a Dispatcher from loaded API configuration.
func NewFromConfig(cfg config.APIConfig, opts ...Option) (*Dispatcher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(Config{
		BaseURL:          cfg.BaseURL,
		Headers:          cfg.DefaultHeaders(),
		Timeout:          cfg.Timeout,
		Debug:            cfg.Debug,
		SensitiveHeaders: cfg.SensitiveHeaders(),
	}, opts...)
}

// NewFromClientConfig sets up the process for cfg and returns a Dispatcher
// for cfg.API. The global logger is initialized from cfg.Logging and, when
// cfg.Telemetry is enabled, request spans and dispatch metrics are exported
// over OTLP/HTTP until Close.
func NewFromClientConfig(ctx context.Context, cfg *config.ClientConfig, opts ...Option) (*Dispatcher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Init(cfg.Logging, cfg.Name)

	var (
		base     []Option
		shutdown []func(context.Context) error
	)
	if cfg.Telemetry.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.TracerConfig())
		if err != nil {
			return nil, err
		}
		shutdown = append(shutdown, tp.Shutdown)

		mc := cfg.MeterConfig()
		mp, err := observability.InitMeter(ctx, &mc)
		if err != nil {
			return nil, stderrors.Join(err, shutdownAll(ctx, shutdown))
		}
		shutdown = append(shutdown, mp.Shutdown)

		metrics, err := observability.NewDispatchMetrics(mp.Meter(observability.InstrumentationName))
		if err != nil {
			return nil, stderrors.Join(err, shutdownAll(ctx, shutdown))
		}
		base = append(base,
			WithTracer(tp.Tracer(observability.InstrumentationName)),
			WithMetrics(metrics),
		)
	}

	d, err := NewFromConfig(cfg.API, append(base, opts...)...)
	if err != nil {
		return nil, stderrors.Join(err, shutdownAll(ctx, shutdown))
	}
	d.shutdown = shutdown
	d.log.Info("client configured", logger.Fields(
		"service", cfg.Name,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"telemetry", cfg.Telemetry.Enabled,
		logger.FieldSessionID, d.sessionID,
	))
	return d, nil
}

func shutdownAll(ctx context.Context, fns []func(context.Context) error) error {
	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		errs = append(errs, fns[i](ctx))
	}
	return stderrors.Join(errs...)
}

// transportFor returns the transport, building the default one on first
// use. Once set it is never replaced.
func (d *Dispatcher) transportFor() (Transport, error) {
	d.transportOnce.Do(func() {
		if d.transport != nil {
			return
		}
		adapter, err := httpclient.New(d.httpCfg, append([]httpclient.Option{
			httpclient.WithLogger(logger.Get(logger.ComponentHTTPClient)),
		}, d.httpOpts...)...)
		if err != nil {
			d.transportErr = err
			return
		}
		d.transport = NewHTTPTransport(adapter)
		d.log.Debug("transport initialized", logger.Fields("base_url", d.baseURL))
	})
	return d.transport, d.transportErr
}

// BaseURL returns the platform endpoint.
func (d *Dispatcher) BaseURL() string { return d.baseURL }

// SessionID identifies this dispatcher in audit entries.
func (d *Dispatcher) SessionID() string { return d.sessionID }

// Headers returns a copy of the default headers.
func (d *Dispatcher) Headers() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return util.CloneMap(d.headers)
}

// SetHeaders merges h into the default headers, overwriting on collision.
// With merge set to false h replaces the defaults entirely.
func (d *Dispatcher) SetHeaders(h map[string]string, merge bool) *Dispatcher {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !merge {
		d.headers = util.CloneMap(h)
		return d
	}
	for k, v := range h {
		d.headers[k] = v
	}
	return d
}

// Timeout returns the default timeout in seconds.
func (d *Dispatcher) Timeout() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.timeout
}

// SetTimeout sets the default timeout in seconds. Zero or less leaves the
// bound to the transport's own default.
func (d *Dispatcher) SetTimeout(seconds int) *Dispatcher {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeout = seconds
	return d
}

// MaskHeaders returns h with credential values masked. An empty h masks
// the dispatcher's default headers instead.
func (d *Dispatcher) MaskHeaders(h map[string]string) map[string]string {
	return d.masker.MaskHeadersOr(h, d.Headers())
}

// MaskOptions returns a copy of opts with the headers entry masked. Options
// without headers, or with headers of an unexpected type, are returned as is.
// Nothing but the headers is masked.
func (d *Dispatcher) MaskOptions(opts map[string]any) map[string]any {
	headers, ok := util.Extract(opts, OptionHeaders, nil).(map[string]string)
	if !ok {
		return opts
	}
	out := util.CloneMap(opts)
	out[OptionHeaders] = d.MaskHeaders(headers)
	return out
}

func (d *Dispatcher) buildOptions(body any, call *callOptions) RequestOptions {
	d.mu.RLock()
	headers := util.CloneMap(d.headers)
	timeout := d.timeout
	d.mu.RUnlock()

	if call.replaceHeaders {
		headers = util.CloneMap(call.headers)
	} else {
		for k, v := range call.headers {
			headers[k] = v
		}
	}
	if call.timeout != nil {
		timeout = *call.timeout
	}
	debug := d.debug
	if call.debug != nil {
		debug = *call.debug
	}

	return RequestOptions{
		Timeout: timeout,
		Headers: headers,
		Debug:   debug,
		Body:    body,
		Query:   call.query,
	}
}

// Request sends one request and returns its classified outcome. The masked
// request is logged before the transport is invoked and the result is
// logged after classification, both under the same request id. Errors from
// the transport come back as an *ExceptionResult, never as a panic or error.
func (d *Dispatcher) Request(ctx context.Context, method, uri string, body any, opts ...CallOption) Result {
	call := &callOptions{}
	for _, opt := range opts {
		opt(call)
	}
	id := call.requestID
	if id == 0 {
		id = d.newID()
	}
	options := d.buildOptions(body, call)

	ctx = logger.ContextWithRequestID(ctx, id)
	ctx, span := d.tracer.Start(ctx, observability.SpanRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int64(observability.AttrRequestID, id),
			attribute.String(observability.AttrSessionID, d.sessionID),
			attribute.String(observability.AttrMethod, method),
			attribute.String(observability.AttrURI, uri),
		),
	)
	defer span.End()

	d.audit.LogRequest(RequestLogEntry{
		RequestID: id,
		SessionID: d.sessionID,
		Method:    method,
		URI:       uri,
		Body:      body,
		// Strict: a call that sends no headers logs none.
		Headers: d.masker.MaskHeaders(options.Headers),
		Options: d.MaskOptions(options.Map()),
	})

	if d.metrics != nil {
		d.metrics.RecordStart(ctx)
	}
	start := time.Now()

	var result Result
	transport, err := d.transportFor()
	if err != nil {
		result = Classify(id, nil, err)
	} else {
		resp, sendErr := transport.Send(ctx, method, uri, options)
		result = Classify(id, resp, sendErr)
	}
	elapsed := time.Since(start)

	d.observe(ctx, span, method, result, elapsed)
	d.audit.LogResponse(newResponseLogEntry(d.sessionID, result, d.masker, elapsed))
	return result
}

func (d *Dispatcher) observe(ctx context.Context, span trace.Span, method string, r Result, elapsed time.Duration) {
	if status := r.StatusCode(); status != 0 {
		span.SetAttributes(attribute.Int(observability.AttrStatusCode, status))
	}

	outcome := observability.OutcomeSuccess
	if exc, ok := r.(*ExceptionResult); ok {
		outcome = observability.OutcomeException
		span.SetAttributes(attribute.String(observability.AttrErrorCode, string(exc.Code())))
		span.RecordError(exc.Err())
		span.SetStatus(codes.Error, exc.Message())
		if d.metrics != nil {
			d.metrics.RecordFailure(ctx, method, string(exc.Code()))
		}
		d.log.WithContext(ctx).Debug("request failed", logger.Fields(
			logger.FieldMethod, method,
			logger.FieldErrorCode, string(exc.Code()),
			logger.FieldDuration, elapsed.Milliseconds(),
		))
	}

	if d.metrics != nil {
		d.metrics.RecordEnd(ctx, method, outcome, elapsed)
	}
}

// Close releases idle connections of the default HTTP transport and flushes
// and stops the exporters started by NewFromClientConfig. It must not be
// called concurrently with Request.
func (d *Dispatcher) Close(ctx context.Context) error {
	var err error
	if t, ok := d.transport.(*HTTPTransport); ok {
		err = t.Adapter().Close(ctx)
	}
	return stderrors.Join(err, shutdownAll(ctx, d.shutdown))
}

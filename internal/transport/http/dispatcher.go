package http

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "mrp/internal/errors"
)

// Dispatcher is the entry point the HTTP listener calls once per request.
// It builds the Request, resolves a controller, invokes it, translates any
// failure, and writes the Response. It is the only place that catches
// failures controllers did not handle themselves, including panics.
type Dispatcher struct {
	router  *Router
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// DispatcherOption configures optional Dispatcher collaborators.
type DispatcherOption func(*Dispatcher)

// WithMetrics records every dispatch in m.
func WithMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTracer opens one span per dispatch with t.
func WithTracer(t trace.Tracer) DispatcherOption {
	return func(d *Dispatcher) {
		if t != nil {
			d.tracer = t
		}
	}
}

// NewDispatcher creates a dispatcher over a fully populated router.
func NewDispatcher(router *Router, logger *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		router: router,
		logger: logger.With(slog.String("component", "dispatcher")),
		tracer: noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, span := d.tracer.Start(r.Context(), "dispatch",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("url.path", r.URL.Path),
		),
	)
	defer span.End()
	r = r.WithContext(ctx)

	req, readErr := FromHTTP(r)
	if readErr != nil {
		d.logger.WarnContext(ctx, "failed to read request body, treating as absent",
			slog.String("error", readErr.Error()),
			slog.String("path", r.URL.Path),
		)
	}

	resp, prefix, err := d.dispatch(req)
	d.writeResponse(w, r, resp)

	status := resp.Status()
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("http.route", prefix),
		attribute.Int("http.response.status_code", status.Code()),
	)
	if status.Code() >= 500 {
		span.SetStatus(codes.Error, resp.Text())
	}
	d.metrics.observe(prefix, r.Method, status, elapsed)
	d.logDispatch(r, prefix, resp, err, elapsed)
}

// Dispatch routes an already built request and always returns a response.
func (d *Dispatcher) Dispatch(req *Request) *Response {
	resp, _, _ := d.dispatch(req)
	return resp
}

// dispatch returns the response, the matched prefix ("" when none) and the
// failure that produced the response, if any.
func (d *Dispatcher) dispatch(req *Request) (*Response, string, error) {
	route, ok := d.router.Match(req.Path())
	if !ok {
		return TranslateError(apperrors.ErrRouteNotFound), "", apperrors.ErrRouteNotFound
	}

	resp, err := invoke(route.Controller, req)
	if err != nil {
		return TranslateError(err), route.Prefix, err
	}
	return resp, route.Prefix, nil
}

// invoke calls the controller, turning a panic or a nil response into an
// error. A controller returning both a response and an error gets its error
// translated.
func invoke(c Controller, req *Request) (resp *Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = nil
			err = &apperrors.PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()

	resp, err = c.Handle(req)
	if err == nil && resp == nil {
		err = apperrors.Internal("controller returned no response", nil)
	}
	return resp, err
}

// writeResponse sends status, Content-Type, Content-Length and body. An absent
// body is written as zero bytes.
func (d *Dispatcher) writeResponse(w http.ResponseWriter, r *http.Request, resp *Response) {
	body := resp.Body()

	h := w.Header()
	h.Set("Content-Type", resp.ContentType().MIME())
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(resp.Status().Code())

	if len(body) == 0 {
		return
	}
	if _, err := w.Write(body); err != nil {
		d.logger.DebugContext(r.Context(), "failed to write response body",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path))
	}
}

func (d *Dispatcher) logDispatch(r *http.Request, prefix string, resp *Response, err error, elapsed time.Duration) {
	ctx := r.Context()
	status := resp.Status().Code()

	level := slog.LevelInfo
	if status >= 400 && status < 500 {
		level = slog.LevelWarn
	} else if status >= 500 {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("route", prefix),
		slog.Int("status", status),
		slog.Int("bytes", resp.ContentLength()),
		slog.Duration("duration", elapsed),
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("request_id", reqID))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	var panicErr *apperrors.PanicError
	if errors.As(err, &panicErr) {
		d.logger.ErrorContext(ctx, "panic recovered",
			slog.Any("panic", panicErr.Value),
			slog.String("stack", string(panicErr.Stack)),
			slog.String("path", r.URL.Path),
		)
	}

	d.logger.LogAttrs(ctx, level, "dispatch completed", attrs...)
}

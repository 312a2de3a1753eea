package dispatch

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/spark/core/controller"
	"github.com/dmitrymomot/spark/core/logger"
	"github.com/dmitrymomot/spark/core/response"
	"github.com/dmitrymomot/spark/core/router"
	"github.com/dmitrymomot/spark/core/static"
	"github.com/dmitrymomot/spark/core/view"
)

// ErrorHandler writes the final failure response when no error hook
// recovered the dispatch.
type ErrorHandler func(ctx *Context, err error)

// Dispatcher executes requests against a compiled route table: resolve the
// route, run before-hooks, execute the action, run after-hooks, build the
// response, with an error-hook branch reachable from every state after
// resolution. The table and hook registries are read-only; each request gets
// its own Context and there is no shared mutable state between dispatches.
type Dispatcher struct {
	table        *router.Table
	hooks        map[*controller.Controller]*controller.Hooks
	view         view.Renderer
	assets       *static.Versioner
	logger       *slog.Logger
	errorHandler ErrorHandler
}

// Option configures a Dispatcher during creation.
type Option func(*Dispatcher)

// WithView sets the template-rendering collaborator.
func WithView(r view.Renderer) Option {
	return func(d *Dispatcher) {
		d.view = r
	}
}

// WithAssets enables asset versioning for reverse-routed URLs.
func WithAssets(v *static.Versioner) Option {
	return func(d *Dispatcher) {
		d.assets = v
	}
}

// WithLogger sets a structured logger for request and failure logging.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.logger = log
		}
	}
}

// WithErrorHandler sets the terminal error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.errorHandler = h
		}
	}
}

// New creates a dispatcher over a compiled table and its hook registries,
// typically the output of a refine.Builder.
func New(table *router.Table, hooks map[*controller.Controller]*controller.Hooks, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		table:        table,
		hooks:        hooks,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.hooks == nil {
		d.hooks = make(map[*controller.Controller]*controller.Hooks)
	}
	return d
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ww := newResponseWriter(w)
	requestID := uuid.NewString()
	ww.Header().Set("X-Request-ID", requestID)

	parts := router.SplitPath(r.URL.Path)

	route := d.table.Lookup(router.Query{Method: r.Method, Parts: parts})
	if route == nil {
		route = d.table.Nearest(parts)
	}
	if route == nil {
		// Total miss is terminal: no hooks run without a matched controller.
		ctx := d.newContext(ww, r, requestID, nil, nil)
		err := &router.NotFoundError{Path: r.URL.Path}
		d.errorHandler(ctx, err)
		d.logRequest(ctx, start, err)
		return
	}

	// The nearest-match fallback may have trimmed trailing segments; find
	// the matched prefix so params come from the right segments.
	matched := parts
	for k := len(parts); k >= 0; k-- {
		if route.MatchParts(parts[:k]) {
			matched = parts[:k]
			break
		}
	}

	ctx := d.newContext(ww, r, requestID, route, route.Params(matched))

	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				d.logger.Error("panic after response written",
					slog.Any("value", perr.value),
					slog.String("path", r.URL.Path),
					logger.RequestID(requestID),
				)
				return
			}
			d.finish(ctx, perr)
			d.logRequest(ctx, start, perr)
		}
	}()

	err := d.run(ctx)
	if err != nil {
		d.finish(ctx, err)
	} else {
		d.respond(ctx)
	}
	d.logRequest(ctx, start, err)
}

// run drives the hook/action pipeline for the matched route.
func (d *Dispatcher) run(ctx *Context) error {
	hooks := d.hooks[ctx.ctl]

	if hooks != nil {
		for _, h := range hooks.BeforeFor(ctx.action) {
			if err := h(ctx); err != nil {
				return err
			}
		}
	}

	body, err := ctx.ctl.Invoke(ctx, ctx.action)
	if err != nil {
		return err
	}

	if ctx.finalized {
		// A reroute settled the body; remaining after-hooks are skipped.
		return nil
	}
	ctx.body = body

	if hooks != nil {
		for _, h := range hooks.AfterFor(ctx.action) {
			if err := h(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// finish routes a failed dispatch through error hooks, falling back to the
// terminal error handler when nothing recovers.
func (d *Dispatcher) finish(ctx *Context, err error) {
	if rerr := d.recoverError(ctx, err); rerr != nil {
		d.errorHandler(ctx, rerr)
		return
	}
	d.respond(ctx)
}

// recoverError looks up error hooks keyed by the error's status, falling
// back to the 500 default key. The first hook that completes without itself
// erroring ends propagation; its return value becomes the response body.
func (d *Dispatcher) recoverError(ctx *Context, err error) error {
	hooks := d.hooks[ctx.ctl]
	if hooks == nil {
		return err
	}

	status := controller.DefaultErrorStatus
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	list := hooks.ErrorsFor(status)
	if len(list) == 0 && status != controller.DefaultErrorStatus {
		list = hooks.ErrorsFor(controller.DefaultErrorStatus)
	}

	for _, h := range list {
		body, herr := h(ctx, err)
		if herr != nil {
			continue
		}
		ctx.body = body
		if ctx.status == http.StatusOK {
			ctx.status = status
		}
		return nil
	}
	return err
}

// respond converts the settled body into a wire response.
func (d *Dispatcher) respond(ctx *Context) {
	var resp response.Response

	switch {
	case ctx.location != "":
		resp = response.Redirect(ctx.location, ctx.redirectStatus)
	default:
		switch body := ctx.body.(type) {
		case nil:
			resp = response.String("", ctx.status)
		case response.Response:
			resp = body
		case string:
			resp = response.HTML(body, ctx.status)
		case []byte:
			resp = response.Bytes(body, "text/html; charset=utf-8", ctx.status)
		default:
			resp = response.JSON(body, ctx.status)
		}
	}

	if err := resp(ctx.w, ctx.r); err != nil {
		d.errorHandler(ctx, err)
	}
}

func (d *Dispatcher) logRequest(ctx *Context, start time.Time, err error) {
	attrs := []any{
		slog.String("method", ctx.r.Method),
		slog.String("path", ctx.r.URL.Path),
		logger.Status(ctx.w.Status()),
		slog.Int("bytes", ctx.w.BytesWritten()),
		logger.Duration(time.Since(start)),
		logger.RequestID(ctx.requestID),
	}
	if ctx.ctl != nil {
		attrs = append(attrs, logger.Route(ctx.ctl.Name(), ctx.action))
	}
	if err != nil {
		attrs = append(attrs, logger.Error(err))
		d.logger.Error("request failed", attrs...)
		return
	}
	d.logger.Info("request completed", attrs...)
}

// defaultErrorHandler writes the error with its status, or 500 when the
// error carries none.
func defaultErrorHandler(ctx *Context, err error) {
	if ctx.w.Written() {
		return
	}
	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	http.Error(ctx.w, err.Error(), status)
}

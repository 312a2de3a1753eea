package dispatch

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/spark/core/controller"
	"github.com/dmitrymomot/spark/core/router"
	"github.com/dmitrymomot/spark/core/urls"
	"github.com/dmitrymomot/spark/core/view"
)

// Context is the per-request state: the matched route, extracted params,
// and the response being built. The dispatcher creates exactly one Context
// per request and reuses it through hooks, the action, and any reroutes.
type Context struct {
	dispatcher *Dispatcher
	w          *responseWriter
	r          *http.Request
	requestID  string

	route  *router.Route
	ctl    *controller.Controller
	action string
	params map[string]string

	status         int
	body           any
	location       string
	redirectStatus int
	// finalized marks the body as settled by a reroute; remaining
	// after-hooks are skipped and the action's own return is ignored.
	finalized bool

	urls *urls.Builder
}

func (d *Dispatcher) newContext(w *responseWriter, r *http.Request, requestID string, route *router.Route, params map[string]string) *Context {
	ctx := &Context{
		dispatcher: d,
		w:          w,
		r:          r,
		requestID:  requestID,
		route:      route,
		params:     params,
		status:     http.StatusOK,
	}
	if route != nil {
		ctx.ctl = route.Controller
		ctx.action = route.Action
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	ctx.urls = urls.New(d.table,
		urls.WithRequest(scheme, r.Host),
		urls.WithCurrentPath(r.URL.Path),
		urls.WithReferer(r.Referer()),
		urls.WithController(ctx.ctl),
		urls.WithAssets(d.assets),
	)
	return ctx
}

// context.Context is satisfied by delegating to the request's context.

func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *Context) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *Context) Err() error                  { return c.r.Context().Err() }
func (c *Context) Value(key any) any           { return c.r.Context().Value(key) }

// Request returns the inbound request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the wrapped response writer.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// RequestID returns the identifier assigned to this dispatch.
func (c *Context) RequestID() string {
	return c.requestID
}

// Controller returns the matched controller.
func (c *Context) Controller() *controller.Controller {
	return c.ctl
}

// Action returns the matched action name.
func (c *Context) Action() string {
	return c.action
}

// Param returns one extracted path placeholder value.
func (c *Context) Param(name string) string {
	return c.params[name]
}

// Params returns the extracted path placeholder values.
func (c *Context) Params() map[string]string {
	return c.params
}

// Status returns the response status to be written.
func (c *Context) Status() int {
	return c.status
}

// SetStatus overrides the response status.
func (c *Context) SetStatus(status int) {
	c.status = status
}

// Body returns the response body value settled so far.
func (c *Context) Body() any {
	return c.body
}

// SetBody replaces the response body; after-hooks use this to decorate
// action results.
func (c *Context) SetBody(body any) {
	c.body = body
}

// Render delegates to the view collaborator, resolving the template against
// the current controller's name. An optional Options value toggles layout
// wrapping and template caching for this call only.
func (c *Context) Render(template string, locals map[string]any, opts ...view.Options) (string, error) {
	if c.dispatcher.view == nil {
		return "", ErrNoRenderer
	}
	name := ""
	if c.ctl != nil {
		name = c.ctl.Name()
	}
	var o view.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	return c.dispatcher.view.Render(c, template, name, locals, o)
}

// PathTo reverse-routes an action. A nil controller resolves against the
// current one; an empty action means "index".
func (c *Context) PathTo(ctl *controller.Controller, action string, args map[string]any) (string, error) {
	return c.urls.PathTo(ctl, action, args)
}

// URLTo turns a path into an absolute URL on the request's scheme and host.
func (c *Context) URLTo(pathOrURL string) string {
	u, err := c.urls.URLTo(pathOrURL)
	if err != nil {
		// Versioning is not requested here, so URLTo cannot fail.
		return pathOrURL
	}
	return u
}

// AssetPath returns the asset's path with a cache-busting version stamp.
func (c *Context) AssetPath(name string) (string, error) {
	if c.dispatcher.assets == nil {
		return "", ErrNoAssets
	}
	clean := strings.TrimPrefix(name, "/")
	stamp, err := c.dispatcher.assets.Version(clean)
	if err != nil {
		return "", err
	}
	return "/" + clean + "?v=" + strconv.FormatInt(stamp, 10), nil
}

// PathToBack resolves the "navigate back" target.
func (c *Context) PathToBack() string {
	return c.urls.PathToBack()
}

// Redirect sets the response to a redirect. The default status is 302;
// an explicit status overrides it.
func (c *Context) Redirect(url string, status ...int) error {
	c.location = url
	c.redirectStatus = http.StatusFound
	if len(status) > 0 {
		c.redirectStatus = status[0]
	}
	return nil
}

// RedirectTo reverse-routes the target action and redirects to it. The args
// map is cloned by the path builder, never mutated.
func (c *Context) RedirectTo(ctl *controller.Controller, action string, args map[string]any, status ...int) error {
	path, err := c.urls.PathTo(ctl, action, args)
	if err != nil {
		return err
	}
	return c.Redirect(path, status...)
}

// Reroute re-invokes another action on this same context. No new controller
// instance or context is constructed; the target's execute runs directly and
// its return value becomes the final response body, overriding anything the
// remaining after-hooks would set. A nil controller reuses the current one;
// an empty action means "index".
func (c *Context) Reroute(ctl *controller.Controller, action string) (any, error) {
	if ctl == nil {
		ctl = c.ctl
	}
	if action == "" {
		action = "index"
	}

	body, err := ctl.Invoke(c, action)
	if err != nil {
		return nil, err
	}
	c.body = body
	c.finalized = true
	return body, nil
}

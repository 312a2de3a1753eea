package urls

import (
	"fmt"
	"maps"
	"net"
	"net/url"
	"strings"

	"github.com/dmitrymomot/spark/core/controller"
	"github.com/dmitrymomot/spark/core/router"
	"github.com/dmitrymomot/spark/core/static"
)

// defaultPorts maps schemes to the port elided from generated URLs.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Builder synthesizes canonical paths and absolute URLs from the route
// table and the inbound request descriptor. One Builder serves one request;
// the table behind it is read-only.
type Builder struct {
	table       *router.Table
	scheme      string
	host        string
	requestPath string
	referer     string
	current     *controller.Controller
	assets      *static.Versioner
}

// Option configures a Builder during creation.
type Option func(*Builder)

// WithRequest sets the inbound scheme and host (which may carry a port).
func WithRequest(scheme, host string) Option {
	return func(b *Builder) {
		b.scheme = scheme
		b.host = host
	}
}

// WithCurrentPath sets the request's own resolved path, used by PathToBack.
func WithCurrentPath(path string) Option {
	return func(b *Builder) {
		b.requestPath = path
	}
}

// WithReferer sets the inbound referer header value.
func WithReferer(referer string) Option {
	return func(b *Builder) {
		b.referer = referer
	}
}

// WithController sets the controller that relative lookups resolve against.
func WithController(ctl *controller.Controller) Option {
	return func(b *Builder) {
		b.current = ctl
	}
}

// WithAssets enables asset versioning through the given versioner.
func WithAssets(v *static.Versioner) Option {
	return func(b *Builder) {
		b.assets = v
	}
}

// New creates a URL builder over the route table.
func New(table *router.Table, opts ...Option) *Builder {
	b := &Builder{
		table:  table,
		scheme: "http",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PathTo builds the canonical path for a controller action. A nil controller
// resolves against the current one; an empty action means "index". Required
// placeholders consume same-named args, optional placeholders substitute when
// present, and leftover args serialize as a sorted query string. The caller's
// args map is never mutated.
func (b *Builder) PathTo(ctl *controller.Controller, action string, args map[string]any) (string, error) {
	if ctl == nil {
		ctl = b.current
	}
	if action == "" {
		action = "index"
	}
	if ctl == nil {
		return "", &router.NotFoundError{Action: action}
	}

	route := b.table.Lookup(router.Query{Controller: ctl, Action: action})
	if route == nil {
		return "", &router.NotFoundError{Controller: ctl.Name(), Action: action}
	}

	remaining := maps.Clone(args)

	var path strings.Builder
	for _, seg := range route.Pattern {
		if !seg.IsParam() {
			path.WriteByte('/')
			path.WriteString(seg.Literal)
			continue
		}

		v, ok := remaining[seg.Name]
		if !ok {
			if seg.Optional {
				continue
			}
			return "", fmt.Errorf("%w: '%s' for %s#%s", ErrArgumentMissing, seg.Name, ctl.Name(), action)
		}
		path.WriteByte('/')
		path.WriteString(url.PathEscape(fmt.Sprint(v)))
		delete(remaining, seg.Name)
	}

	result := path.String()
	if result == "" {
		result = "/"
	}

	if len(remaining) > 0 {
		query := url.Values{}
		for k, v := range remaining {
			query.Set(k, fmt.Sprint(v))
		}
		// Encode sorts by key, keeping generated URLs deterministic.
		result += "?" + query.Encode()
	}

	return result, nil
}

// urlOptions tunes URLTo.
type urlOptions struct {
	version bool
}

// URLOption configures a single URLTo call.
type URLOption func(*urlOptions)

// WithVersion appends "?v=<mtime>" of the matching static asset for
// cache busting.
func WithVersion() URLOption {
	return func(o *urlOptions) {
		o.version = true
	}
}

// URLTo turns a path into an absolute URL on the request's scheme and host,
// eliding the port when it equals the scheme's conventional default.
// Absolute targets pass through untouched apart from versioning.
func (b *Builder) URLTo(target string, opts ...URLOption) (string, error) {
	var o urlOptions
	for _, opt := range opts {
		opt(&o)
	}

	result := target
	if !strings.Contains(target, "://") {
		if !strings.HasPrefix(result, "/") {
			result = "/" + result
		}
		result = b.baseURL() + result
	}

	if o.version {
		versioned, err := b.appendVersion(result)
		if err != nil {
			return "", err
		}
		result = versioned
	}

	return result, nil
}

// URLToAction is URLTo over a reverse-routed action path.
func (b *Builder) URLToAction(ctl *controller.Controller, action string, args map[string]any, opts ...URLOption) (string, error) {
	path, err := b.PathTo(ctl, action, args)
	if err != nil {
		return "", err
	}
	return b.URLTo(path, opts...)
}

// PathToBack resolves the "navigate back" target: the referer when present
// and pointing somewhere else, otherwise the nearest routed ancestor of the
// current path, otherwise "/".
func (b *Builder) PathToBack() string {
	if b.referer != "" {
		refPath := b.referer
		if u, err := url.Parse(b.referer); err == nil && u.Path != "" {
			refPath = u.Path
		}
		if refPath != b.requestPath {
			return b.referer
		}
	}

	parts := router.SplitPath(b.requestPath)
	if len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	// Resolve the trimmed concrete path against the table, trimming further
	// until an ancestor route matches.
	for k := len(parts); k > 0; k-- {
		if b.table.Lookup(router.Query{Parts: parts[:k]}) != nil {
			return "/" + strings.Join(parts[:k], "/")
		}
	}
	return "/"
}

func (b *Builder) baseURL() string {
	host := b.host
	if h, p, err := net.SplitHostPort(host); err == nil && defaultPorts[b.scheme] == p {
		host = h
	}
	return b.scheme + "://" + host
}

func (b *Builder) appendVersion(target string) (string, error) {
	if b.assets == nil {
		return "", ErrNoVersioner
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("urls: parse '%s': %w", target, err)
	}

	stamp, err := b.assets.Version(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return "", err
	}

	sep := "?"
	if u.RawQuery != "" {
		sep = "&"
	}
	return target + sep + "v=" + fmt.Sprint(stamp), nil
}

package controller

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/spark/core/view"
)

// Ctx is the per-request contract actions and hooks are written against.
// The dispatcher creates one concrete context per request and reuses it for
// the whole pipeline, including in-place reroutes; no second instance is
// ever constructed for the same dispatch.
type Ctx interface {
	context.Context

	// Request surface.
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Controller() *Controller
	Action() string
	Param(name string) string
	Params() map[string]string

	// Response state. After-hooks decorate action results through SetBody;
	// a body finalized by Reroute is never overwritten by them.
	Status() int
	SetStatus(status int)
	Body() any
	SetBody(body any)

	// Render delegates to the view collaborator, resolving the template
	// against the current controller's name. An optional Options value
	// toggles layout wrapping and template caching for this call only.
	Render(template string, locals map[string]any, opts ...view.Options) (string, error)

	// Reverse routing. A nil controller resolves against the current one;
	// an empty action means "index".
	PathTo(ctl *Controller, action string, args map[string]any) (string, error)
	URLTo(pathOrURL string) string
	AssetPath(name string) (string, error)
	PathToBack() string

	// Redirects. The default status is 302; an explicit status overrides it.
	// Caller-owned argument collections are never mutated.
	Redirect(url string, status ...int) error
	RedirectTo(ctl *Controller, action string, args map[string]any, status ...int) error

	// Reroute re-invokes another action on the same request context,
	// finalizing the response body and skipping remaining after-hooks.
	// A nil controller reuses the current one; an empty action means "index".
	Reroute(ctl *Controller, action string) (any, error)
}

package controller

import (
	"fmt"
)

// ExecuteFunc overrides a controller's action execution. An override may
// special-case particular actions and must delegate to InvokeDefault for
// every action it does not handle itself.
type ExecuteFunc func(ctx Ctx, action string) (any, error)

// Controller is a named collection of routable actions. A controller value
// is boot-time configuration: per-request state lives on the dispatch
// context, never on the controller itself.
type Controller struct {
	name    string
	path    string
	parent  *Controller
	actions *Set
	execute ExecuteFunc
}

// Option configures a Controller during creation.
type Option func(*Controller)

// WithPath overrides the default mount path ("/" + name).
func WithPath(path string) Option {
	return func(c *Controller) {
		c.path = path
	}
}

// WithParent links the controller to a parent for action inheritance.
func WithParent(parent *Controller) Option {
	return func(c *Controller) {
		c.parent = parent
	}
}

// WithExecute installs an execute override.
func WithExecute(fn ExecuteFunc) Option {
	return func(c *Controller) {
		c.execute = fn
	}
}

// New creates a controller with an empty action table.
func New(name string, opts ...Option) *Controller {
	c := &Controller{
		name:    name,
		path:    "/" + name,
		actions: NewSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the controller's name.
func (c *Controller) Name() string {
	return c.name
}

// Path returns the controller's default mount path.
func (c *Controller) Path() string {
	return c.path
}

// Parent returns the controller this one inherits from, or nil.
func (c *Controller) Parent() *Controller {
	return c.parent
}

// Actions returns the controller's live action table.
func (c *Controller) Actions() *Set {
	return c.actions
}

// Invoke runs the named action through the controller's execute override
// when one is installed, falling back to InvokeDefault otherwise.
func (c *Controller) Invoke(ctx Ctx, action string) (any, error) {
	if c.execute != nil {
		return c.execute(ctx, action)
	}
	return c.InvokeDefault(ctx, action)
}

// InvokeDefault is the base execute implementation: it calls the action's
// handler directly. Execute overrides delegate here for actions they do not
// special-case.
func (c *Controller) InvokeDefault(ctx Ctx, action string) (any, error) {
	a, ok := c.actions.Get(action)
	if !ok {
		return nil, fmt.Errorf("%w: %s#%s", ErrUnknownAction, c.name, action)
	}
	return a.Handler(ctx)
}

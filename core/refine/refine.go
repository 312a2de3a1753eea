package refine

import (
	"fmt"
	"path"

	"github.com/dmitrymomot/spark/core/controller"
	"github.com/dmitrymomot/spark/core/router"
)

// Extension contributes cross-cutting routes or hooks to every controller
// mount. Extensions run after the mount's own block, against the same
// Mounter, in registration order.
type Extension interface {
	Mount(m *Mounter)
}

// Builder compiles controller mounts into the application route table and
// the per-controller hook registries. All compilation happens single-threaded
// at boot; every validation failure panics so the application never starts
// with a broken table.
type Builder struct {
	table      *router.Table
	hooks      map[*controller.Controller]*controller.Hooks
	extensions []Extension
}

// Option configures a Builder during creation.
type Option func(*Builder)

// WithExtensions registers cross-cutting mount extensions.
func WithExtensions(exts ...Extension) Option {
	return func(b *Builder) {
		b.extensions = append(b.extensions, exts...)
	}
}

// New creates an empty route builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		table: router.NewTable(),
		hooks: make(map[*controller.Controller]*controller.Hooks),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Use registers cross-cutting mount extensions after creation.
func (b *Builder) Use(exts ...Extension) {
	b.extensions = append(b.extensions, exts...)
}

// Mount compiles one controller at the given base path. An empty path uses
// the controller's default; a nil fn compiles the default route conventions.
// The mount's batch (including nested mounts) is sorted by descending
// rendered path, so literal segments are matched ahead of placeholders, and
// then concatenated onto the table in mount order.
func (b *Builder) Mount(ctl *controller.Controller, basePath string, fn func(m *Mounter)) {
	if basePath == "" {
		basePath = ctl.Path()
	}

	var batch []*router.Route
	b.mount(ctl, joinPaths("/", basePath), fn, &batch)

	router.SortBatch(batch)
	for _, rt := range batch {
		b.table.Upsert(rt)
	}
}

func (b *Builder) mount(ctl *controller.Controller, base string, fn func(m *Mounter), batch *[]*router.Route) {
	hooks, ok := b.hooks[ctl]
	if !ok {
		hooks = controller.NewHooks()
		b.hooks[ctl] = hooks
	}

	m := &Mounter{
		builder: b,
		ctl:     ctl,
		base:    base,
		hooks:   hooks,
		batch:   batch,
	}

	if fn == nil {
		m.Defaults()
	} else {
		fn(m)
	}

	for _, ext := range b.extensions {
		ext.Mount(m)
	}

	own := 0
	for _, rt := range *batch {
		if rt.Controller == ctl {
			own++
		}
	}
	if own == 0 {
		panic(fmt.Errorf("%w: controller '%s'", ErrNoRoutes, ctl.Name()))
	}
}

// Table returns the compiled route table.
func (b *Builder) Table() *router.Table {
	return b.table
}

// HooksFor returns the hook registry compiled for the controller, or nil.
func (b *Builder) HooksFor(ctl *controller.Controller) *controller.Hooks {
	return b.hooks[ctl]
}

// Hooks returns every compiled hook registry keyed by controller.
func (b *Builder) Hooks() map[*controller.Controller]*controller.Hooks {
	return b.hooks
}

// joinPaths merges mount path fragments, collapsing duplicate separators.
func joinPaths(parts ...string) string {
	joined := path.Join(append([]string{"/"}, parts...)...)
	if joined == "" {
		return "/"
	}
	return joined
}

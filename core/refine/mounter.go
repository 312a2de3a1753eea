package refine

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/spark/core/controller"
	"github.com/dmitrymomot/spark/core/router"
)

// restRoutes is the canonical REST convention, in declaration order.
var restRoutes = []struct {
	method string
	action string
}{
	{http.MethodGet, "index"},
	{http.MethodPost, "create"},
	{http.MethodGet, "show"},
	{http.MethodPut, "update"},
	{http.MethodDelete, "delete"},
}

// Mounter is the explicit DSL context for one controller mount. A mount
// block receives it and declares routes and hooks through its methods;
// nothing is registered through package-level state.
type Mounter struct {
	builder *Builder
	ctl     *controller.Controller
	base    string
	hooks   *controller.Hooks
	batch   *[]*router.Route
}

// Controller returns the controller being mounted, for extensions.
func (m *Mounter) Controller() *controller.Controller {
	return m.ctl
}

// Base returns the mount's merged base path, for extensions.
func (m *Mounter) Base() string {
	return m.base
}

// Get declares a GET route. With one argument it names the action and the
// path is synthesized from the action name and its declared parameters;
// with two, the first is the explicit path and the second the action.
func (m *Mounter) Get(pathOrAction string, action ...string) {
	m.handle(http.MethodGet, pathOrAction, action)
}

// Post declares a POST route; argument forms as for Get.
func (m *Mounter) Post(pathOrAction string, action ...string) {
	m.handle(http.MethodPost, pathOrAction, action)
}

// Put declares a PUT route; argument forms as for Get.
func (m *Mounter) Put(pathOrAction string, action ...string) {
	m.handle(http.MethodPut, pathOrAction, action)
}

// Patch declares a PATCH route; argument forms as for Get.
func (m *Mounter) Patch(pathOrAction string, action ...string) {
	m.handle(http.MethodPatch, pathOrAction, action)
}

// Delete declares a DELETE route; argument forms as for Get.
func (m *Mounter) Delete(pathOrAction string, action ...string) {
	m.handle(http.MethodDelete, pathOrAction, action)
}

// REST declares the canonical convention routes for each action the
// controller publicly declares and that has no route yet: GET / → index,
// POST / → create, GET /:params → show, PUT /:params → update,
// DELETE /:params → delete. An action's refined route shape, when carried
// in by inheritance or composition, wins over the convention.
func (m *Mounter) REST() {
	for _, rr := range restRoutes {
		a, ok := m.ctl.Actions().Get(rr.action)
		if !ok || m.hasRoute(rr.action) {
			continue
		}
		if refined, ok := m.ctl.Actions().RefinedFor(rr.action); ok {
			m.register(refined.Method, refined.Path, a, false)
			continue
		}
		m.register(rr.method, restPath(a), a, false)
	}
}

// Defaults runs REST, then adds a GET route for every remaining unrouted
// action: the action name followed by one placeholder per declared
// parameter, required as ":name", optional as ":?name".
func (m *Mounter) Defaults() {
	m.REST()
	for _, name := range m.ctl.Actions().Names() {
		if m.hasRoute(name) {
			continue
		}
		a, _ := m.ctl.Actions().Get(name)
		if refined, ok := m.ctl.Actions().RefinedFor(name); ok {
			m.register(refined.Method, refined.Path, a, false)
			continue
		}
		m.register(http.MethodGet, actionPath(a), a, false)
	}
}

// Mount compiles a nested controller at the merged path. An empty path uses
// the child's default; a nil fn compiles the child's default conventions.
// Nesting depth is unbounded; the child's routes join this mount's batch and
// sort with it.
func (m *Mounter) Mount(child *controller.Controller, childPath string, fn func(m *Mounter)) {
	if childPath == "" {
		childPath = child.Path()
	}
	m.builder.mount(child, joinPaths(m.base, childPath), fn, m.batch)
}

// Before registers a before hook for the given actions (none = all actions).
func (m *Mounter) Before(fn controller.HookFunc, actions ...string) {
	m.hooks.Before(fn, actions...)
}

// After registers an after hook for the given actions (none = all actions).
func (m *Mounter) After(fn controller.HookFunc, actions ...string) {
	m.hooks.After(fn, actions...)
}

// Error registers an error hook for the given statuses (none = 500).
func (m *Mounter) Error(fn controller.ErrorHookFunc, statuses ...int) {
	m.hooks.OnError(fn, statuses...)
}

func (m *Mounter) handle(method, pathOrAction string, action []string) {
	name := pathOrAction
	declaredPath := ""
	if len(action) > 0 {
		declaredPath = pathOrAction
		name = action[0]
	}

	a, ok := m.ctl.Actions().Get(name)
	if !ok {
		panic(fmt.Errorf("%w: '%s' on controller '%s'", ErrUnknownAction, name, m.ctl.Name()))
	}

	relPath := declaredPath
	if relPath == "" {
		relPath = actionPath(a)
	}
	m.register(method, relPath, a, true)
}

// register validates and appends one route to the mount's batch. Refined
// declarations are recorded on the action table so inheritance and
// composition carry the forced shape forward.
func (m *Mounter) register(method, relPath string, a controller.Action, refined bool) {
	rt, err := router.New(method, joinPaths(m.base, relPath), m.ctl, a.Name)
	if err != nil {
		panic(err)
	}

	if rt.PlaceholderCount() < a.RequiredArity() {
		panic(fmt.Errorf("%w: path '%s' supplies %d placeholders, action '%s' requires %d",
			ErrArityMismatch, relPath, rt.PlaceholderCount(), a.Name, a.RequiredArity()))
	}

	if refined {
		m.ctl.Actions().SetRefined(a.Name, method, relPath)
	}

	// Redefining an action's route overwrites the batch entry in place.
	for i, existing := range *m.batch {
		if existing.Controller == rt.Controller && existing.Action == rt.Action {
			(*m.batch)[i] = rt
			return
		}
	}
	*m.batch = append(*m.batch, rt)
}

func (m *Mounter) hasRoute(action string) bool {
	for _, rt := range *m.batch {
		if rt.Controller == m.ctl && rt.Action == action {
			return true
		}
	}
	return m.builder.table.Lookup(router.Query{Controller: m.ctl, Action: action}) != nil
}

// placeholders renders an action's declared parameters as path placeholders,
// in declaration order.
func placeholders(a controller.Action) string {
	var b strings.Builder
	for _, p := range a.Params {
		if p.Optional {
			b.WriteString("/:?" + p.Name)
		} else {
			b.WriteString("/:" + p.Name)
		}
	}
	return b.String()
}

// actionPath is the default GET shape: "/<name>" plus placeholders.
func actionPath(a controller.Action) string {
	return "/" + a.Name + placeholders(a)
}

// restPath is the REST shape: the convention base "/" plus placeholders.
func restPath(a controller.Action) string {
	if s := placeholders(a); s != "" {
		return s
	}
	return "/"
}

// Package refine compiles controller mounts into the application route
// table. It is the declarative DSL of the framework, executed once at boot:
//
//	b := refine.New()
//	b.Mount(users, "", func(m *refine.Mounter) {
//		m.REST()
//		m.Get("/export/:format", "export")
//		m.Before(requireAuth)
//		m.Error(renderErrorPage)
//		m.Mount(avatars, "", nil) // nested, unbounded depth
//	})
//	b.Mount(pages, "/", nil) // nil block = default conventions
//
// The DSL surface is an explicit Mounter value, not implicit package state.
// Within a mount, routes sort by descending rendered path so literal
// segments match ahead of placeholders; separate mounts concatenate in
// mount order.
//
// Every misdeclaration (an unknown action, a path that cannot cover the
// action's required parameters, a controller yielding no routes) panics
// during compilation. A broken table is a boot failure, never a request-time
// surprise.
package refine

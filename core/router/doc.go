// Package router provides the route table underlying the framework's
// dispatch and reverse-routing engines. Routes bind an HTTP method and a
// path pattern of literal and placeholder segments to a controller action.
//
// Patterns are deliberately restricted: literal segments, required
// placeholders (":name") and optional placeholders (":?name") taken from an
// action's declared parameters. This is not a general regex router.
//
// The table is an ordered sequence. Within one controller mount, routes are
// sorted by descending lexicographic order of their rendered paths, which
// places literal segments ahead of placeholders; batches from different
// mounts concatenate in mount order. The table is assembled once at boot
// (see core/refine) and is read-only during serving.
//
// Basic usage:
//
//	table := router.NewTable()
//	rt, _ := router.New(http.MethodGet, "/users/:id", usersController, "show")
//	table.Upsert(rt)
//
//	match := table.Lookup(router.Query{
//		Method: http.MethodGet,
//		Parts:  router.SplitPath("/users/42"),
//	})
//
// Nearest resolves a path by trimming trailing segments until a registered
// route matches, which backs the "navigate back" fallback in reverse routing.
package router

// Package controller models routable controllers as explicit,
// compile-time-populated action tables rather than runtime reflection.
// A Controller owns a live Set of named actions; each action declares its
// parameters (which become path placeholders), its handler, and the source
// that contributed it.
//
// Declaring a controller:
//
//	users := controller.New("users")
//	users.Actions().
//		Add(controller.Action{Name: "index", Handler: listUsers}).
//		Add(controller.Action{
//			Name:    "show",
//			Params:  []controller.Param{{Name: "id"}},
//			Handler: showUser,
//		})
//
// # Composition
//
// Action sets compose by explicit set algebra. InheritActions copies actions
// (with their refined route shapes) from the immediate parent; With filters a
// reusable action module into a derived module that Include mixes into a
// controller. The final action set is the union of all contributing sources
// after each source's own Only/Exclude filter, so composition order does not
// matter.
//
// # Hooks
//
// Hooks holds the per-controller before/after/error callables, keyed by
// action name (or wildcard) and by status code respectively. Lookup merges
// the action-specific list with the wildcard list, specific-first. Registries
// are built during mount compilation and read-only while serving.
package controller

package router

import (
	"sort"

	"github.com/dmitrymomot/spark/core/controller"
)

// Query selects routes by any non-empty subset of route attributes.
// Zero-valued fields are ignored. Parts is a parsed request path;
// a nil slice means "unspecified" while an empty non-nil slice matches
// the root pattern.
type Query struct {
	Method     string
	Parts      []string
	Controller *controller.Controller
	Action     string
}

func (q Query) matches(r *Route) bool {
	if q.Method != "" && q.Method != r.Method {
		return false
	}
	if q.Controller != nil && q.Controller != r.Controller {
		return false
	}
	if q.Action != "" && q.Action != r.Action {
		return false
	}
	if q.Parts != nil && !r.MatchParts(q.Parts) {
		return false
	}
	return true
}

// Table is the ordered collection of compiled routes for an application.
// It is built single-threaded at boot and read-only afterwards, so
// concurrent lookups during serving need no locking.
type Table struct {
	routes []*Route
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{}
}

// Upsert inserts the route, replacing in place any existing route for the
// same (controller, action) pair. At most one route exists per action.
func (t *Table) Upsert(route *Route) {
	for i, existing := range t.routes {
		if existing.Controller == route.Controller && existing.Action == route.Action {
			t.routes[i] = route
			return
		}
	}
	t.routes = append(t.routes, route)
}

// Lookup returns the first route matching the query in table order,
// or nil when none matches.
func (t *Table) Lookup(q Query) *Route {
	for _, route := range t.routes {
		if q.matches(route) {
			return route
		}
	}
	return nil
}

// Nearest resolves a path by progressively trimming trailing segments until
// a registered route matches the remaining pattern. The empty pattern, if
// routed, is the terminal fallback. Returns nil when nothing matches at all.
func (t *Table) Nearest(parts []string) *Route {
	if parts == nil {
		parts = []string{}
	}
	for k := len(parts); k >= 0; k-- {
		if route := t.Lookup(Query{Parts: parts[:k]}); route != nil {
			return route
		}
	}
	return nil
}

// Routes returns a copy of the table's routes in registration order.
func (t *Table) Routes() []*Route {
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// SortBatch orders one controller mount's compiled routes by descending
// lexicographic order of their rendered paths. The ':' placeholder marker
// compares lower than letters, so literal segments sort ahead of
// parameterized ones and more specific paths are tried first.
func SortBatch(batch []*Route) {
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Path() > batch[j].Path()
	})
}

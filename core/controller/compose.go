package controller

import "slices"

// Filter narrows an action module before composition. An empty Only keeps
// every action; Exclude always removes. Filters apply per contributing
// source, so unions of filtered sources stay commutative.
type Filter struct {
	Only    []string
	Exclude []string
}

func (f Filter) keeps(name string) bool {
	if slices.Contains(f.Exclude, name) {
		return false
	}
	if len(f.Only) > 0 && !slices.Contains(f.Only, name) {
		return false
	}
	return true
}

// With builds a derived action module from a reusable one: the module's
// actions intersected with Only (when given) minus Exclude, plus the module's
// helpers and the subset of refined route shapes whose action survived.
// Mix the result into a controller with Include.
func With(module *Set, filter Filter) *Set {
	derived := NewSet()
	for _, name := range module.Names() {
		if !filter.keeps(name) {
			continue
		}
		a, _ := module.Get(name)
		derived.Add(a)
		if refined, ok := module.RefinedFor(name); ok {
			derived.SetRefined(name, refined.Method, refined.Path)
		}
	}
	for name, v := range module.helpers {
		derived.AddHelper(name, v)
	}
	return derived
}

// Include mixes a module's actions into the controller's own action table.
// Later includes and inherited actions union together; each action keeps the
// provenance of the module that contributed it.
func (c *Controller) Include(module *Set) {
	for _, name := range module.Names() {
		a, _ := module.Get(name)
		if a.Source == "" {
			a.Source = "module"
		}
		c.actions.Add(a)
		if refined, ok := module.RefinedFor(name); ok {
			c.actions.SetRefined(name, refined.Method, refined.Path)
		}
	}
	for name, v := range module.helpers {
		c.actions.AddHelper(name, v)
	}
}

// InheritActions copies the named actions (all of them when names is nil),
// minus exclude, from the immediate parent into this controller, carrying
// each copied action's refined route shape when present. This is set
// arithmetic over the parent's action table, not a copy of route objects.
func (c *Controller) InheritActions(names []string, exclude ...string) {
	if c.parent == nil {
		return
	}
	filter := Filter{Only: names, Exclude: exclude}
	for _, name := range c.parent.actions.Names() {
		if !filter.keeps(name) {
			continue
		}
		a, _ := c.parent.actions.Get(name)
		if a.Source == "" {
			a.Source = c.parent.name
		}
		c.actions.Add(a)
		if refined, ok := c.parent.actions.RefinedFor(name); ok {
			c.actions.SetRefined(name, refined.Method, refined.Path)
		}
	}
}

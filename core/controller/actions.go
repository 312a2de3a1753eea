package controller

// Param is one declared parameter of an action, in declaration order.
// Required parameters render as mandatory path placeholders, optional
// parameters as optional placeholders.
type Param struct {
	Name     string
	Optional bool
}

// HandlerFunc is the body of a routable action. The returned value becomes
// the response body: strings and []byte are written as-is, response.Response
// values are executed, anything else is serialized as JSON.
type HandlerFunc func(ctx Ctx) (any, error)

// Action is one routable unit of behavior on a controller.
type Action struct {
	Name    string
	Params  []Param
	Handler HandlerFunc
	// Source records the module or controller that contributed the action.
	Source string
}

// RequiredArity returns the number of required parameters.
func (a Action) RequiredArity() int {
	n := 0
	for _, p := range a.Params {
		if !p.Optional {
			n++
		}
	}
	return n
}

// Refined is an action's explicitly declared (method, path) pair, as opposed
// to a shape auto-derived by the REST or defaults conventions. Paths are
// relative to the controller's mount point.
type Refined struct {
	Method string
	Path   string
}

// Set is an explicit, compile-time-populated action table: the named actions
// of a controller or of a reusable action module, plus any refined route
// shapes and the non-action helper values those actions rely on.
//
// A Set is assembled single-threaded at boot. It is live, not memoized:
// composition applied before a read is reflected in that read.
type Set struct {
	order   []string
	actions map[string]Action
	refined map[string]Refined
	helpers map[string]any
}

// NewSet creates an empty action table.
func NewSet() *Set {
	return &Set{
		actions: make(map[string]Action),
		refined: make(map[string]Refined),
		helpers: make(map[string]any),
	}
}

// Add registers an action, replacing a same-named one in place.
// Returns the set for chaining during controller declaration.
func (s *Set) Add(a Action) *Set {
	if _, exists := s.actions[a.Name]; !exists {
		s.order = append(s.order, a.Name)
	}
	s.actions[a.Name] = a
	return s
}

// AddHelper registers a non-action helper value carried along by With.
func (s *Set) AddHelper(name string, v any) *Set {
	s.helpers[name] = v
	return s
}

// Get returns the named action.
func (s *Set) Get(name string) (Action, bool) {
	a, ok := s.actions[name]
	return a, ok
}

// Names returns the action names in declaration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether the named action is declared.
func (s *Set) Has(name string) bool {
	_, ok := s.actions[name]
	return ok
}

// Len returns the number of declared actions.
func (s *Set) Len() int {
	return len(s.order)
}

// Helper returns the named helper value.
func (s *Set) Helper(name string) (any, bool) {
	v, ok := s.helpers[name]
	return v, ok
}

// SetRefined records an explicit (method, path) declaration for an action
// so that inheritance and composition carry forced route shapes forward.
func (s *Set) SetRefined(action, method, path string) {
	s.refined[action] = Refined{Method: method, Path: path}
}

// RefinedFor returns the refined route shape for an action, if any.
func (s *Set) RefinedFor(action string) (Refined, bool) {
	r, ok := s.refined[action]
	return r, ok
}

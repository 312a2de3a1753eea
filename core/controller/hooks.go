package controller

import "net/http"

// Wildcard keys a hook to every action of the controller.
const Wildcard = "*"

// DefaultErrorStatus keys error hooks registered without an explicit status.
const DefaultErrorStatus = http.StatusInternalServerError

// HookFunc runs before or after an action. A non-nil error aborts the
// pipeline and routes into error-hook recovery.
type HookFunc func(ctx Ctx) error

// ErrorHookFunc attempts to recover a failed dispatch. A nil error return
// ends propagation and the returned value becomes the response body.
type ErrorHookFunc func(ctx Ctx, err error) (any, error)

// Hooks is the per-controller hook registry: before/after lists keyed by
// action name or wildcard, error lists keyed by status code. It is populated
// during mount compilation and read-only during serving.
type Hooks struct {
	before map[string][]HookFunc
	after  map[string][]HookFunc
	errors map[int][]ErrorHookFunc
}

// NewHooks creates an empty hook registry.
func NewHooks() *Hooks {
	return &Hooks{
		before: make(map[string][]HookFunc),
		after:  make(map[string][]HookFunc),
		errors: make(map[int][]ErrorHookFunc),
	}
}

// Before appends a hook for the given actions; no actions means wildcard.
func (h *Hooks) Before(fn HookFunc, actions ...string) {
	appendHook(h.before, fn, actions)
}

// After appends a hook for the given actions; no actions means wildcard.
func (h *Hooks) After(fn HookFunc, actions ...string) {
	appendHook(h.after, fn, actions)
}

// OnError appends an error hook for the given statuses; no statuses means
// the 500 default.
func (h *Hooks) OnError(fn ErrorHookFunc, statuses ...int) {
	if len(statuses) == 0 {
		statuses = []int{DefaultErrorStatus}
	}
	for _, status := range statuses {
		h.errors[status] = append(h.errors[status], fn)
	}
}

func appendHook(m map[string][]HookFunc, fn HookFunc, actions []string) {
	if len(actions) == 0 {
		actions = []string{Wildcard}
	}
	for _, action := range actions {
		m[action] = append(m[action], fn)
	}
}

// BeforeFor returns the before hooks for an action: the action-specific
// list merged with the wildcard list, specific-first, in registration order.
func (h *Hooks) BeforeFor(action string) []HookFunc {
	return mergeHooks(h.before, action)
}

// AfterFor returns the after hooks for an action, specific-first.
func (h *Hooks) AfterFor(action string) []HookFunc {
	return mergeHooks(h.after, action)
}

// ErrorsFor returns the error hooks registered for the exact status.
// Callers fall back to DefaultErrorStatus when the list is empty.
func (h *Hooks) ErrorsFor(status int) []ErrorHookFunc {
	return h.errors[status]
}

func mergeHooks(m map[string][]HookFunc, action string) []HookFunc {
	specific := m[action]
	wildcard := m[Wildcard]
	if len(wildcard) == 0 {
		return specific
	}
	merged := make([]HookFunc, 0, len(specific)+len(wildcard))
	merged = append(merged, specific...)
	merged = append(merged, wildcard...)
	return merged
}

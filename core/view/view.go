package view

import (
	"context"
	"errors"
	"fmt"
)

var ErrTemplateNotFound = errors.New("template not found")

// TemplateNotFoundError reports a missing template, carrying the template
// name and the controller it was resolved against.
type TemplateNotFoundError struct {
	Template   string
	Controller string
}

// Error implements the error interface.
func (e *TemplateNotFoundError) Error() string {
	if e.Controller == "" {
		return fmt.Sprintf("template not found: %s", e.Template)
	}
	return fmt.Sprintf("template not found: %s (controller %s)", e.Template, e.Controller)
}

// Unwrap allows errors.Is(err, ErrTemplateNotFound).
func (e *TemplateNotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}

// Options tunes a single render call. Nil fields keep the renderer's
// defaults: layout on, caching decided by the environment.
type Options struct {
	Layout *bool
	Cache  *bool
}

// Renderer is the view collaborator contract. Render resolves the named
// template against the controller's scope and returns the rendered body.
// Misses surface as TemplateNotFoundError; the engine never retries.
type Renderer interface {
	Render(ctx context.Context, template, controllerName string, locals map[string]any, opts Options) (string, error)
}

// Bool is a convenience for building Options literals.
func Bool(v bool) *bool {
	return &v
}

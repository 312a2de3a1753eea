package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidPattern = errors.New("invalid route path pattern")
	ErrDuplicateParam = errors.New("duplicate parameter name")
	ErrRouteNotFound  = errors.New("route not found")
)

// NotFoundError reports a failed route resolution, either by
// (controller, action) during reverse routing or by path during dispatch.
type NotFoundError struct {
	Controller string
	Action     string
	Path       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("route not found")
	if e.Controller != "" {
		fmt.Fprintf(&b, " for %s#%s", e.Controller, e.Action)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " for path '%s'", e.Path)
	}
	return b.String()
}

// Unwrap allows errors.Is(err, ErrRouteNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrRouteNotFound
}

// StatusCode maps missing routes to 404 for error-hook keying.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

package router

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/spark/core/controller"
)

// Segment is one element of a route's path pattern: either literal text
// or a named placeholder (required or optional).
type Segment struct {
	Literal  string
	Name     string
	Optional bool
}

// IsParam reports whether the segment is a placeholder.
func (s Segment) IsParam() bool {
	return s.Name != ""
}

// String renders the segment in pattern syntax: "users", ":id" or ":?page".
func (s Segment) String() string {
	if !s.IsParam() {
		return s.Literal
	}
	if s.Optional {
		return ":?" + s.Name
	}
	return ":" + s.Name
}

// ParsePattern splits a path pattern like "/users/:id/:?tab" into segments.
// Duplicate separators collapse; "" and "/" parse to an empty pattern.
func ParsePattern(pattern string) ([]Segment, error) {
	parts := splitPath(pattern)
	segments := make([]Segment, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		if !strings.HasPrefix(part, ":") {
			segments = append(segments, Segment{Literal: part})
			continue
		}

		name := strings.TrimPrefix(part, ":")
		optional := strings.HasPrefix(name, "?")
		name = strings.TrimPrefix(name, "?")
		if name == "" {
			return nil, fmt.Errorf("%w: empty placeholder in '%s'", ErrInvalidPattern, pattern)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateParam, name, pattern)
		}
		seen[name] = struct{}{}
		segments = append(segments, Segment{Name: name, Optional: optional})
	}

	return segments, nil
}

// splitPath breaks a request path or pattern into its non-empty segments.
func splitPath(path string) []string {
	raw := strings.Split(path, "/")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// SplitPath exposes request-path segmentation for dispatch and reverse routing.
func SplitPath(path string) []string {
	return splitPath(path)
}

// Route binds an HTTP method and path pattern to one controller action.
// Routes are immutable once built; the table replaces rather than mutates.
type Route struct {
	Method     string
	Pattern    []Segment
	Controller *controller.Controller
	Action     string
}

// New parses the pattern and builds an immutable route.
func New(method, pattern string, ctl *controller.Controller, action string) (*Route, error) {
	segments, err := ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &Route{
		Method:     strings.ToUpper(method),
		Pattern:    segments,
		Controller: ctl,
		Action:     action,
	}, nil
}

// Path renders the pattern back to its canonical string form.
// The empty pattern renders as "/".
func (r *Route) Path() string {
	if len(r.Pattern) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range r.Pattern {
		b.WriteByte('/')
		b.WriteString(seg.String())
	}
	return b.String()
}

// MatchParts reports whether the given request segments satisfy the pattern.
// Literals must match exactly, required placeholders consume one segment,
// optional placeholders consume one when available.
func (r *Route) MatchParts(parts []string) bool {
	j := 0
	for _, seg := range r.Pattern {
		if seg.IsParam() {
			if j < len(parts) {
				j++
				continue
			}
			if seg.Optional {
				continue
			}
			return false
		}
		if j < len(parts) && parts[j] == seg.Literal {
			j++
			continue
		}
		return false
	}
	return j == len(parts)
}

// Params extracts placeholder values from request segments that matched
// this route's pattern. Omitted optional placeholders are absent from the map.
func (r *Route) Params(parts []string) map[string]string {
	params := make(map[string]string)
	j := 0
	for _, seg := range r.Pattern {
		if j >= len(parts) {
			break
		}
		if seg.IsParam() {
			params[seg.Name] = parts[j]
		}
		j++
	}
	return params
}

// PlaceholderCount returns the number of placeholders in the pattern.
func (r *Route) PlaceholderCount() int {
	n := 0
	for _, seg := range r.Pattern {
		if seg.IsParam() {
			n++
		}
	}
	return n
}

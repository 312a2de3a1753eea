package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// Component renders a templ component to a body string, so actions can
// return templ output through the regular body pipeline:
//
//	func show(ctx controller.Ctx) (any, error) {
//		return view.Component(ctx, pages.UserCard(user))
//	}
func Component(ctx context.Context, c templ.Component) (string, error) {
	if c == nil {
		return "", fmt.Errorf("view: nil templ component")
	}
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", fmt.Errorf("view: render templ component: %w", err)
	}
	return b.String(), nil
}

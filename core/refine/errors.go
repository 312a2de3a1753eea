package refine

import "errors"

var (
	ErrUnknownAction = errors.New("route declares unknown action")
	ErrArityMismatch = errors.New("route path does not cover required action parameters")
	ErrNoRoutes      = errors.New("controller yields no routes")
)

package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrNoRenderer = errors.New("no view renderer configured")
	ErrNoAssets   = errors.New("no asset versioner configured")
)

// statusCode is implemented by errors carrying an HTTP status; the
// dispatcher keys error hooks by it.
type statusCode interface {
	StatusCode() int
}

// PanicError exposes a recovered panic to external error handlers, carrying
// the original panic value and the stack captured at the panic point.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to reach a panicked error value.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

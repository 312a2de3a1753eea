package view_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spark/core/view"
)

func TestComponent(t *testing.T) {
	t.Parallel()

	t.Run("renders to a string", func(t *testing.T) {
		t.Parallel()

		c := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<span>ok</span>")
			return err
		})

		out, err := view.Component(context.Background(), c)
		require.NoError(t, err)
		assert.Equal(t, "<span>ok</span>", out)
	})

	t.Run("propagates render failures", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("render failed")
		c := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return sentinel
		})

		_, err := view.Component(context.Background(), c)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("nil component errors", func(t *testing.T) {
		t.Parallel()

		_, err := view.Component(context.Background(), nil)
		assert.Error(t, err)
	})
}

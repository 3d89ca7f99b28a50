package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerRegistry_Register(t *testing.T) {
	t.Run("last write wins", func(t *testing.T) {
		r := NewHandlerRegistry()
		r.Register("task", func(_ context.Context, _ map[string]any) (map[string]any, error) {
			return map[string]any{"version": 1}, nil
		})
		r.Register("task", func(_ context.Context, _ map[string]any) (map[string]any, error) {
			return map[string]any{"version": 2}, nil
		})

		out, err := r.Execute(context.Background(), "task", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, out["version"])
	})

	t.Run("unregistered type names the offender", func(t *testing.T) {
		r := NewHandlerRegistry()
		_, err := r.Execute(context.Background(), "mystery", nil)
		assert.ErrorIs(t, err, ErrUnregisteredHandler)
		assert.Contains(t, err.Error(), "mystery")
	})
}

func TestHandlerRegistry_Execute_PassesInputDirectly(t *testing.T) {
	r := NewHandlerRegistry()
	input := map[string]any{"k": "v"}
	r.Register("probe", func(_ context.Context, in map[string]any) (map[string]any, error) {
		// The registry hands over the caller's map, not a copy.
		in["seen"] = true
		return nil, nil
	})

	_, err := r.Execute(context.Background(), "probe", input)
	require.NoError(t, err)
	assert.Equal(t, true, input["seen"])
}

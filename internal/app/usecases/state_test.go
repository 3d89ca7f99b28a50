package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/flow"
)

func TestRunState_Node(t *testing.T) {
	n := &flow.Node{
		ID:      "a",
		Type:    "task",
		Inputs:  map[string]any{"in": 1},
		Outputs: map[string]any{"out": 2},
	}

	t.Run("seeds from declared initial values", func(t *testing.T) {
		s := NewRunState()
		st := s.Node(n)
		assert.Equal(t, 1, st.Inputs["in"])
		assert.Equal(t, 2, st.Outputs["out"])

		// Mutating working state never touches the definition.
		st.Inputs["in"] = 99
		st.Outputs["out"] = 99
		assert.Equal(t, 1, n.Inputs["in"])
		assert.Equal(t, 2, n.Outputs["out"])
	})

	t.Run("returns the same state on repeated touch", func(t *testing.T) {
		s := NewRunState()
		first := s.Node(n)
		first.Outputs["extra"] = true
		second := s.Node(n)
		assert.Equal(t, true, second.Outputs["extra"])
	})
}

func TestRunState_ReadWithoutSeeding(t *testing.T) {
	n := &flow.Node{ID: "a", Type: "task", Outputs: map[string]any{"out": 2}}

	s := NewRunState()
	// An untouched node reads its declared initial values.
	assert.Equal(t, 2, s.Outputs(n)["out"])
	assert.Nil(t, s.Inputs(n))

	st := s.Node(n)
	require.NotNil(t, st)
	st.Outputs["out"] = 3
	assert.Equal(t, 3, s.Outputs(n)["out"])
}

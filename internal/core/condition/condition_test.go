package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(fact, op string, value any) map[string]any {
	return map[string]any{"fact": fact, "operator": op, "value": value}
}

func TestParse(t *testing.T) {
	t.Run("parses all combinator", func(t *testing.T) {
		p, err := Parse(map[string]any{"all": []any{
			rule("status", OpEqual, "ok"),
			rule("count", OpGreaterThan, 3),
		}})
		require.NoError(t, err)
		require.Len(t, p.All, 2)
		assert.Equal(t, "status", p.All[0].Fact)
	})

	t.Run("parses nested combinators", func(t *testing.T) {
		p, err := Parse(map[string]any{"any": []any{
			map[string]any{"all": []any{rule("a", OpEqual, 1)}},
			rule("b", OpLessThan, 2),
		}})
		require.NoError(t, err)
		require.Len(t, p.Any, 2)
		assert.Len(t, p.Any[0].All, 1)
	})

	t.Run("rejects malformed specs", func(t *testing.T) {
		cases := []struct {
			name string
			spec map[string]any
			want error
		}{
			{"nil spec", nil, ErrEmptyCondition},
			{"non-list combinator", map[string]any{"all": "nope"}, ErrMalformedCondition},
			{"empty combinator", map[string]any{"any": []any{}}, ErrMalformedCondition},
			{"missing fact", map[string]any{"operator": OpEqual, "value": 1}, ErrMalformedCondition},
			{"missing operator", map[string]any{"fact": "a", "value": 1}, ErrMalformedCondition},
			{"missing value", map[string]any{"fact": "a", "operator": OpEqual}, ErrMalformedCondition},
			{"unknown operator", rule("a", "contains", 1), ErrUnknownOperator},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := Parse(tc.spec)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestPredicate_Evaluate(t *testing.T) {
	facts := map[string]any{"status": "ok", "count": 5, "ratio": 0.5}

	t.Run("leaf operators", func(t *testing.T) {
		cases := []struct {
			name string
			spec map[string]any
			want bool
		}{
			{"equal match", rule("status", OpEqual, "ok"), true},
			{"equal mismatch", rule("status", OpEqual, "bad"), false},
			{"equal missing fact", rule("ghost", OpEqual, "ok"), false},
			{"notEqual match", rule("status", OpNotEqual, "bad"), true},
			{"notEqual missing fact", rule("ghost", OpNotEqual, "x"), true},
			{"greaterThan", rule("count", OpGreaterThan, 3), true},
			{"greaterThan false", rule("count", OpGreaterThan, 5), false},
			{"lessThan", rule("ratio", OpLessThan, 1), true},
			{"numeric cross-type equal", rule("count", OpEqual, 5.0), true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				p, err := Parse(tc.spec)
				require.NoError(t, err)
				got, err := p.Evaluate(facts)
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			})
		}
	})

	t.Run("all requires every child", func(t *testing.T) {
		p, err := Parse(map[string]any{"all": []any{
			rule("status", OpEqual, "ok"),
			rule("count", OpGreaterThan, 10),
		}})
		require.NoError(t, err)
		got, err := p.Evaluate(facts)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("any requires one child", func(t *testing.T) {
		p, err := Parse(map[string]any{"any": []any{
			rule("status", OpEqual, "bad"),
			rule("count", OpGreaterThan, 1),
		}})
		require.NoError(t, err)
		got, err := p.Evaluate(facts)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("non-numeric comparison errors", func(t *testing.T) {
		p, err := Parse(rule("status", OpGreaterThan, 1))
		require.NoError(t, err)
		_, err = p.Evaluate(facts)
		assert.ErrorIs(t, err, ErrNotComparable)
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("a", "a"))
	assert.True(t, Equal(1, 1.0))
	assert.True(t, Equal(int64(7), 7))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal("1", 1))
	assert.False(t, Equal(true, 1))

	// Composite values never compare equal: strict shallow equality only.
	m := map[string]any{"k": "v"}
	assert.False(t, Equal(m, m))
	assert.False(t, Equal([]int{1}, []int{1}))
}

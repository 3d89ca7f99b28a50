// Package condition provides the predicate tree evaluated against node
// output facts when an edge carries a compound condition. The tree is parsed
// from the reserved "all"/"any" condition shape and evaluated in-process, so
// routing decisions are deterministic and unit-testable.
package condition

import (
	"fmt"
)

// Operator names accepted in rule leaves.
const (
	OpEqual       = "equal"
	OpNotEqual    = "notEqual"
	OpGreaterThan = "greaterThan"
	OpLessThan    = "lessThan"
)

// Predicate is a node in the parsed rule tree: either a leaf comparison
// (Fact/Operator/Value) or a combinator (All/Any) over child predicates.
type Predicate struct {
	Fact     string
	Operator string
	Value    any

	All []*Predicate
	Any []*Predicate
}

// Parse converts a compound condition mapping — {"all": [...]} or
// {"any": [...]} with nestable rule leaves {fact, operator, value} — into a
// predicate tree.
func Parse(spec map[string]any) (*Predicate, error) {
	if spec == nil {
		return nil, ErrEmptyCondition
	}
	if raw, ok := spec["all"]; ok {
		children, err := parseList(raw)
		if err != nil {
			return nil, err
		}
		return &Predicate{All: children}, nil
	}
	if raw, ok := spec["any"]; ok {
		children, err := parseList(raw)
		if err != nil {
			return nil, err
		}
		return &Predicate{Any: children}, nil
	}
	return parseLeaf(spec)
}

func parseList(raw any) ([]*Predicate, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrMalformedCondition, raw)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty combinator", ErrMalformedCondition)
	}
	out := make([]*Predicate, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected a rule mapping, got %T", ErrMalformedCondition, item)
		}
		p, err := Parse(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func parseLeaf(spec map[string]any) (*Predicate, error) {
	fact, ok := spec["fact"].(string)
	if !ok || fact == "" {
		return nil, fmt.Errorf("%w: rule is missing a fact name", ErrMalformedCondition)
	}
	op, ok := spec["operator"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: rule %q is missing an operator", ErrMalformedCondition, fact)
	}
	switch op {
	case OpEqual, OpNotEqual, OpGreaterThan, OpLessThan:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	value, ok := spec["value"]
	if !ok {
		return nil, fmt.Errorf("%w: rule %q is missing a value", ErrMalformedCondition, fact)
	}
	return &Predicate{Fact: fact, Operator: op, Value: value}, nil
}

// Evaluate walks the predicate tree against the given facts. A missing fact
// fails its leaf rather than erroring; evaluation errors are reserved for
// comparisons the operator cannot perform.
func (p *Predicate) Evaluate(facts map[string]any) (bool, error) {
	switch {
	case p.All != nil:
		for _, child := range p.All {
			ok, err := child.Evaluate(facts)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case p.Any != nil:
		for _, child := range p.Any {
			ok, err := child.Evaluate(facts)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		return p.evaluateLeaf(facts)
	}
}

func (p *Predicate) evaluateLeaf(facts map[string]any) (bool, error) {
	actual, exists := facts[p.Fact]
	switch p.Operator {
	case OpEqual:
		return exists && Equal(actual, p.Value), nil
	case OpNotEqual:
		return !exists || !Equal(actual, p.Value), nil
	case OpGreaterThan, OpLessThan:
		if !exists {
			return false, nil
		}
		a, ok := toFloat(actual)
		if !ok {
			return false, fmt.Errorf("%w: fact %q is not numeric (%T)", ErrNotComparable, p.Fact, actual)
		}
		b, ok := toFloat(p.Value)
		if !ok {
			return false, fmt.Errorf("%w: rule value for %q is not numeric (%T)", ErrNotComparable, p.Fact, p.Value)
		}
		if p.Operator == OpGreaterThan {
			return a > b, nil
		}
		return a < b, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownOperator, p.Operator)
}

// Equal reports strict shallow equality between two values. Numbers compare
// across integer and float representations; composite values never compare
// equal (no deep/structural equality).
func Equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if !isScalar(a) || !isScalar(b) {
		return false
	}
	return a == b
}

// isScalar reports whether == is safe on v.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Package schema models the declarative group contract consumed by the
// classification pipeline: an ordered sequence of named groups, each with an
// optional inclusive cardinality range. Declaration order is part of the
// contract — it decides classification tie-breaks and validation order — so
// the schema is an ordered list rather than a map.
package schema

import "math"

// RestKey is the reserved result key for the catch-all bucket. Declared
// groups must not use it; Normalize rejects the collision.
const RestKey = "rest"

// Unbounded stands in for a missing upper cardinality bound.
const Unbounded = math.MaxInt

// Constraint is the inclusive cardinality range a group's element count must
// satisfy. A nil bound falls back to the default: zero for Min, Unbounded
// for Max. Min <= Max is expected but not enforced; a schema declaring the
// reverse simply never (or always) passes validation.
type Constraint struct {
	Min *int
	Max *int
}

// Group pairs a caller-chosen, non-empty name with its constraint.
type Group struct {
	Name       string
	Constraint Constraint
}

// Schema is an ordered sequence of group declarations.
type Schema []Group

// Exactly constrains a group to exactly n elements.
func Exactly(n int) Constraint {
	return Between(n, n)
}

// AtLeast constrains a group to n or more elements.
func AtLeast(n int) Constraint {
	return Constraint{Min: &n}
}

// AtMost constrains a group to n or fewer elements.
func AtMost(n int) Constraint {
	return Constraint{Max: &n}
}

// Between constrains a group to the inclusive range [min, max].
func Between(min, max int) Constraint {
	return Constraint{Min: &min, Max: &max}
}

// Any places no bounds on a group: zero through Unbounded elements pass.
func Any() Constraint {
	return Constraint{}
}

// EffectiveMin resolves the lower bound, substituting the default when the
// constraint leaves it unset.
func (c Constraint) EffectiveMin() int {
	if c.Min == nil {
		return 0
	}
	return *c.Min
}

// EffectiveMax resolves the upper bound, substituting Unbounded when the
// constraint leaves it unset.
func (c Constraint) EffectiveMax() int {
	if c.Max == nil {
		return Unbounded
	}
	return *c.Max
}

// Resolved is a group with both bounds normalized to effective values.
type Resolved struct {
	Name string
	Min  int
	Max  int
}

// Normalize validates the schema shape and resolves every declared group's
// effective bounds, preserving declaration order. A nil schema is rejected
// (an empty one is fine), as are empty names, names colliding with RestKey,
// and duplicate declarations — the last two are representable here where the
// original key-value contract made them impossible or silent.
func Normalize(s Schema) ([]Resolved, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	seen := make(map[string]struct{}, len(s))
	out := make([]Resolved, 0, len(s))
	for _, group := range s {
		if group.Name == "" {
			return nil, ErrEmptyGroupName
		}
		if group.Name == RestKey {
			return nil, &ReservedNameError{Name: group.Name}
		}
		if _, dup := seen[group.Name]; dup {
			return nil, &DuplicateGroupError{Name: group.Name}
		}
		seen[group.Name] = struct{}{}

		out = append(out, Resolved{
			Name: group.Name,
			Min:  group.Constraint.EffectiveMin(),
			Max:  group.Constraint.EffectiveMax(),
		})
	}
	return out, nil
}

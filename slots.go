// Package slots partitions an ordered collection of nodes into named groups
// according to a declarative schema and enforces each group's cardinality
// bounds. The call is a pure function of its inputs: no state survives
// between invocations and concurrent callers need no coordination.
package slots

import (
	"github.com/goliatone/go-slots/pkg/node"
	"github.com/goliatone/go-slots/pkg/schema"
)

// RestKey is the fixed result key for nodes matching no declared group.
const RestKey = schema.RestKey

// Result maps the derived "<group>Children" key for every declared group,
// plus RestKey, to the ordered nodes assigned to that bucket. Buckets are
// disjoint and their union is exactly the flattened input sequence. Every
// declared key is present even when its bucket is empty, so consumers can
// index without existence checks.
type Result map[string][]node.Node

// ChildrenKey derives the result key for a declared group name.
func ChildrenKey(group string) string {
	return group + "Children"
}

// Children returns the bucket for a declared group.
func (r Result) Children(group string) []node.Node {
	return r[ChildrenKey(group)]
}

// Rest returns the catch-all bucket.
func (r Result) Rest() []node.Node {
	return r[RestKey]
}

// Group flattens the raw input, assigns every node to the first declared
// group whose name is a truthy marker on it (or to the catch-all bucket),
// and validates each declared group's element count against its bounds in
// declaration order. The first violated bound aborts the call; either the
// complete validated Result is returned or no Result at all.
//
// nodes may be a single node.Node, nil, or sequences nested to any depth;
// see node.Flatten for the filtering rules.
func Group(nodes any, sch schema.Schema) (Result, error) {
	resolved, err := schema.Normalize(sch)
	if err != nil {
		return nil, err
	}

	result := classify(node.Flatten(nodes), resolved)
	if err := validate(result, resolved); err != nil {
		return nil, err
	}
	return result, nil
}

// MustGroup is Group for inputs known to be valid; it panics on error.
func MustGroup(nodes any, sch schema.Schema) Result {
	result, err := Group(nodes, sch)
	if err != nil {
		panic(err)
	}
	return result
}

func classify(nodes []node.Node, groups []schema.Resolved) Result {
	result := make(Result, len(groups)+1)
	for _, g := range groups {
		result[ChildrenKey(g.Name)] = []node.Node{}
	}
	result[RestKey] = []node.Node{}

	for _, n := range nodes {
		key := RestKey
		for _, g := range groups {
			// First declared match wins; later matches are ignored.
			if n.HasMarker(g.Name) {
				key = ChildrenKey(g.Name)
				break
			}
		}
		result[key] = append(result[key], n)
	}
	return result
}

// validate checks each declared group in declaration order, min before max.
// The catch-all bucket is never checked.
func validate(result Result, groups []schema.Resolved) error {
	for _, g := range groups {
		count := len(result[ChildrenKey(g.Name)])
		if count < g.Min {
			return &CardinalityError{Group: g.Name, Kind: KindMin, Limit: g.Min, Actual: count}
		}
		if count > g.Max {
			return &CardinalityError{Group: g.Name, Kind: KindMax, Limit: g.Max, Actual: count}
		}
	}
	return nil
}

// Package node defines the capability nodes must expose for classification
// and the flattening pass that turns arbitrarily nested inputs into the flat
// working sequence the classifier consumes.
package node

// Node is the only capability classification relies on: membership in a
// named group is tested purely by marker presence. Concrete representations
// implement it however they store their markers.
type Node interface {
	HasMarker(name string) bool
}

// Element is the basic concrete Node: an optional name for diagnostics, a
// marker set, and an opaque payload the pipeline never inspects.
type Element struct {
	Name    string
	Markers map[string]bool
	Payload any
}

// New returns an Element carrying the given markers, all truthy.
func New(name string, markers ...string) *Element {
	set := make(map[string]bool, len(markers))
	for _, marker := range markers {
		set[marker] = true
	}
	return &Element{Name: name, Markers: set}
}

// HasMarker reports whether the marker is present and truthy. A marker
// stored as false counts as absent.
func (e *Element) HasMarker(name string) bool {
	if e == nil {
		return false
	}
	return e.Markers[name]
}

// Value adapts an arbitrary payload that carries no markers. It always
// classifies into the catch-all bucket, the way loose scalars inside a node
// tree are still part of the sequence without belonging to any group.
type Value struct {
	V any
}

// HasMarker always reports false.
func (Value) HasMarker(string) bool {
	return false
}

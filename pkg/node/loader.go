package node

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseList decodes a YAML (or JSON) node document into the raw input
// accepted by Flatten. The document is a sequence, nested to any depth, of
// element mappings, nulls, booleans, and loose scalars — mirroring exactly
// what the flattener accepts programmatically. Element mappings carry a
// `name`, a `markers` entry (either a sequence of truthy marker names or a
// name-to-bool mapping), and an optional opaque `payload`.
func ParseList(raw []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("node: parse document: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}
	return fromYAML(root.Content[0])
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, el := range n.Content {
			item, err := fromYAML(el)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case yaml.MappingNode:
		return elementFromYAML(n)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("node: line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("node: line %d: unsupported node kind", n.Line)
	}
}

func elementFromYAML(n *yaml.Node) (*Element, error) {
	var raw struct {
		Name    string    `yaml:"name"`
		Markers yaml.Node `yaml:"markers"`
		Payload any       `yaml:"payload"`
	}
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("node: line %d: %w", n.Line, err)
	}

	el := &Element{Name: raw.Name, Payload: raw.Payload}
	switch {
	case raw.Markers.Kind == 0 || raw.Markers.Tag == "!!null":
		el.Markers = map[string]bool{}
	case raw.Markers.Kind == yaml.SequenceNode:
		var names []string
		if err := raw.Markers.Decode(&names); err != nil {
			return nil, fmt.Errorf("node: line %d: markers: %w", n.Line, err)
		}
		el.Markers = make(map[string]bool, len(names))
		for _, name := range names {
			el.Markers[name] = true
		}
	case raw.Markers.Kind == yaml.MappingNode:
		if err := raw.Markers.Decode(&el.Markers); err != nil {
			return nil, fmt.Errorf("node: line %d: markers: %w", n.Line, err)
		}
	default:
		return nil, fmt.Errorf("node: line %d: markers must be a sequence or mapping", n.Line)
	}
	return el, nil
}

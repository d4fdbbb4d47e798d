package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Issue describes a schema declaration that normalization tolerates by
// design but that almost certainly indicates an authoring mistake.
type Issue struct {
	Group   string `json:"group,omitempty"`
	Message string `json:"message"`
}

// Lint re-examines a schema document for problems the classification
// pipeline deliberately does not enforce: inverted or negative bounds,
// non-integer bound values, unknown constraint keys, and duplicate or
// reserved group names. Parse errors and non-mapping documents are returned
// as errors, not issues, since no schema can be derived from them at all.
func Lint(doc Document) ([]Issue, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc.Raw(), &root); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", doc.Location(), err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrNilSchema
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, ErrNilSchema
	}

	var issues []Issue
	seen := make(map[string]struct{})
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value
		value := mapping.Content[i+1]

		if name == "" {
			issues = append(issues, Issue{Message: "group name is empty"})
			continue
		}
		if name == RestKey {
			issues = append(issues, Issue{Group: name, Message: fmt.Sprintf("name %q is reserved for the catch-all bucket", RestKey)})
		}
		if _, dup := seen[name]; dup {
			issues = append(issues, Issue{Group: name, Message: "group declared more than once; the later declaration is unreachable"})
		}
		seen[name] = struct{}{}

		issues = append(issues, lintConstraint(name, value)...)
	}
	return issues, nil
}

func lintConstraint(group string, n *yaml.Node) []Issue {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return []Issue{{Group: group, Message: "constraint must be a mapping of min/max bounds"}}
	}

	var issues []Issue
	bounds := map[string]int{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value := n.Content[i+1]

		switch key {
		case "min", "max":
			bound, ok := intFromNode(value)
			if !ok {
				issues = append(issues, Issue{Group: group, Message: fmt.Sprintf("%s bound %q is not an integer and falls back to the default", key, value.Value)})
				continue
			}
			if bound < 0 {
				issues = append(issues, Issue{Group: group, Message: fmt.Sprintf("%s bound is negative", key)})
			}
			bounds[key] = bound
		default:
			issues = append(issues, Issue{Group: group, Message: fmt.Sprintf("unknown constraint key %q", key)})
		}
	}

	min, hasMin := bounds["min"]
	max, hasMax := bounds["max"]
	if hasMin && hasMax && min > max {
		issues = append(issues, Issue{Group: group, Message: fmt.Sprintf("min %d exceeds max %d; the group can never validate", min, max)})
	}
	return issues
}

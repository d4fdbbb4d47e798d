package schema

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a schema document (YAML, or JSON via the YAML superset) into
// an ordered Schema. Mapping order in the document becomes declaration
// order, so a file carries the same tie-break guarantee as a programmatic
// declaration. Bound values that are not integers are ignored and fall back
// to the defaults; slots-lint surfaces them.
func Parse(doc Document) (Schema, error) {
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

	out := make(Schema, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		out = append(out, Group{
			Name:       mapping.Content[i].Value,
			Constraint: constraintFromNode(mapping.Content[i+1]),
		})
	}
	return out, nil
}

func constraintFromNode(n *yaml.Node) Constraint {
	if n == nil || n.Kind != yaml.MappingNode {
		return Constraint{}
	}

	var c Constraint
	for i := 0; i+1 < len(n.Content); i += 2 {
		bound, ok := intFromNode(n.Content[i+1])
		if !ok {
			continue
		}
		switch n.Content[i].Value {
		case "min":
			c.Min = &bound
		case "max":
			c.Max = &bound
		}
	}
	return c
}

func intFromNode(n *yaml.Node) (int, bool) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!int" {
		return 0, false
	}
	var v int
	if err := n.Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}

// Load reads and parses an on-disk schema document.
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	doc, err := NewDocument(SourceFromFile(path), data)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// LoadFS reads and parses a schema document from fsys.
func LoadFS(fsys fs.FS, name string) (Schema, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", name, err)
	}
	doc, err := NewDocument(SourceFromFS(name), data)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

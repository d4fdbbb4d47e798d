// Package testsupport provides fixture and golden helpers shared by the
// contract tests. Testing helpers fail the test on error to keep callers
// concise.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	slots "github.com/goliatone/go-slots"
	"github.com/goliatone/go-slots/pkg/node"
	"github.com/goliatone/go-slots/pkg/schema"
)

// MustLoadSchema reads and parses a schema fixture.
func MustLoadSchema(t *testing.T, path string) schema.Schema {
	t.Helper()

	sch, err := schema.Load(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return sch
}

// MustParseNodes reads a node document fixture into the raw input accepted
// by node.Flatten.
func MustParseNodes(t *testing.T, path string) any {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read nodes: %v", err)
	}
	raw, err := node.ParseList(data)
	if err != nil {
		t.Fatalf("parse nodes: %v", err)
	}
	return raw
}

// Snapshot reduces a Result to bucket-key -> node labels so goldens diff on
// assignment and order rather than on concrete node representations.
func Snapshot(result slots.Result) map[string][]string {
	out := make(map[string][]string, len(result))
	for key, nodes := range result {
		labels := make([]string, 0, len(nodes))
		for _, n := range nodes {
			labels = append(labels, label(n))
		}
		out[key] = labels
	}
	return out
}

func label(n node.Node) string {
	switch item := n.(type) {
	case *node.Element:
		if item.Name != "" {
			return item.Name
		}
		markers := make([]string, 0, len(item.Markers))
		for name, truthy := range item.Markers {
			if truthy {
				markers = append(markers, name)
			}
		}
		sort.Strings(markers)
		return fmt.Sprintf("element%v", markers)
	case node.Value:
		return fmt.Sprintf("%v", item.V)
	default:
		return fmt.Sprintf("%v", n)
	}
}

// WriteGolden writes a JSON golden when UPDATE_GOLDENS is enabled.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustLoadSnapshot loads a JSON golden produced by WriteGolden.
func MustLoadSnapshot(t *testing.T, path string) map[string][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	var out map[string][]string
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

package slots_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	slots "github.com/goliatone/go-slots"
	"github.com/goliatone/go-slots/pkg/node"
	"github.com/goliatone/go-slots/pkg/schema"
)

func TestGroup_AssignsByMarker(t *testing.T) {
	iconNode := node.New("iconNode", "icon")
	textNode := node.New("textNode")
	sch := schema.Schema{{Name: "icon", Constraint: schema.Exactly(1)}}

	result, err := slots.Group([]any{iconNode, textNode}, sch)
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	want := slots.Result{
		"iconChildren": {iconNode},
		"rest":         {textNode},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_MissingRequiredGroup(t *testing.T) {
	sch := schema.Schema{{Name: "icon", Constraint: schema.Exactly(1)}}

	_, err := slots.Group([]any{node.New("textNode")}, sch)
	if err == nil {
		t.Fatal("expected cardinality error")
	}
	if got := err.Error(); got != "Must have at least 1 `icon` element" {
		t.Fatalf("unexpected message: %q", got)
	}

	var cardErr *slots.CardinalityError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected CardinalityError, got %T", err)
	}
	if cardErr.Kind != slots.KindMin || cardErr.Group != "icon" || cardErr.Limit != 1 || cardErr.Actual != 0 {
		t.Fatalf("unexpected error detail: %+v", cardErr)
	}
}

func TestGroup_UnboundedMax(t *testing.T) {
	sch := schema.Schema{{Name: "tab", Constraint: schema.AtLeast(0)}}
	tabs := []any{node.New("tabA", "tab"), node.New("tabB", "tab"), node.New("tabB", "tab")}

	result, err := slots.Group(tabs, sch)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(result.Children("tab")) != 3 {
		t.Fatalf("expected 3 tabs, got %d", len(result.Children("tab")))
	}
	if len(result.Rest()) != 0 {
		t.Fatalf("expected empty rest, got %d", len(result.Rest()))
	}
}

func TestGroup_EmptySchemaFiltersNullEquivalents(t *testing.T) {
	nodeX := node.New("nodeX")

	result, err := slots.Group([]any{nil, false, nodeX, nil}, schema.Schema{})
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	want := slots.Result{"rest": {nodeX}}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_FirstDeclaredMatchWins(t *testing.T) {
	both := node.New("both", "a", "b")
	sch := schema.Schema{
		{Name: "a", Constraint: schema.Exactly(1)},
		{Name: "b", Constraint: schema.Exactly(1)},
	}

	// b now has zero nodes, so validation must fail on b's min, proving the
	// node went to a only.
	_, err := slots.Group([]any{both}, sch)
	if err == nil {
		t.Fatal("expected cardinality error for b")
	}
	if got := err.Error(); got != "Must have at least 1 `b` element" {
		t.Fatalf("unexpected message: %q", got)
	}

	relaxed := schema.Schema{
		{Name: "a", Constraint: schema.Exactly(1)},
		{Name: "b", Constraint: schema.Any()},
	}
	result, err := slots.Group([]any{both}, relaxed)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(result.Children("a")) != 1 || len(result.Children("b")) != 0 {
		t.Fatalf("expected first-declared assignment, got a=%d b=%d",
			len(result.Children("a")), len(result.Children("b")))
	}
}

func TestGroup_DeclarationOrderDrivesTieBreak(t *testing.T) {
	both := node.New("both", "a", "b")
	reversed := schema.Schema{
		{Name: "b", Constraint: schema.Any()},
		{Name: "a", Constraint: schema.Any()},
	}

	result, err := slots.Group([]any{both}, reversed)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(result.Children("b")) != 1 || len(result.Children("a")) != 0 {
		t.Fatalf("expected assignment to first-declared b, got a=%d b=%d",
			len(result.Children("a")), len(result.Children("b")))
	}
}

func TestGroup_FailFastOrdering(t *testing.T) {
	// a violates max, b violates min; a is declared first so its max
	// violation is the one reported.
	sch := schema.Schema{
		{Name: "a", Constraint: schema.AtMost(1)},
		{Name: "b", Constraint: schema.AtLeast(1)},
	}
	nodes := []any{node.New("a1", "a"), node.New("a2", "a")}

	_, err := slots.Group(nodes, sch)
	if err == nil {
		t.Fatal("expected cardinality error")
	}

	var cardErr *slots.CardinalityError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected CardinalityError, got %T", err)
	}
	if cardErr.Group != "a" || cardErr.Kind != slots.KindMax {
		t.Fatalf("expected a's max violation first, got %+v", cardErr)
	}
	if got := err.Error(); got != "Cannot have more than 1 `a` element" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestGroup_MinCheckedBeforeMaxPerGroup(t *testing.T) {
	// An inverted range fails min first even though max is violated too.
	sch := schema.Schema{{Name: "a", Constraint: schema.Between(5, 0)}}

	_, err := slots.Group([]any{node.New("a1", "a")}, sch)

	var cardErr *slots.CardinalityError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected CardinalityError, got %v", err)
	}
	if cardErr.Kind != slots.KindMin {
		t.Fatalf("expected min violation, got %+v", cardErr)
	}
}

func TestGroup_PluralPhrasing(t *testing.T) {
	sch := schema.Schema{{Name: "tab", Constraint: schema.AtLeast(2)}}

	_, err := slots.Group(nil, sch)
	if err == nil {
		t.Fatal("expected cardinality error")
	}
	if got := err.Error(); got != "Must have at least 2 `tab` elements" {
		t.Fatalf("unexpected message: %q", got)
	}

	sch = schema.Schema{{Name: "tab", Constraint: schema.AtMost(2)}}
	nodes := []any{node.New("t1", "tab"), node.New("t2", "tab"), node.New("t3", "tab")}
	_, err = slots.Group(nodes, sch)
	if err == nil {
		t.Fatal("expected cardinality error")
	}
	if got := err.Error(); got != "Cannot have more than 2 `tab` elements" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestGroup_SeedsEveryDeclaredKey(t *testing.T) {
	sch := schema.Schema{
		{Name: "icon", Constraint: schema.Any()},
		{Name: "tab", Constraint: schema.Any()},
	}

	result, err := slots.Group(nil, sch)
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	for _, key := range []string{"iconChildren", "tabChildren", "rest"} {
		bucket, ok := result[key]
		if !ok {
			t.Fatalf("missing key %q", key)
		}
		if bucket == nil {
			t.Fatalf("key %q seeded with nil bucket", key)
		}
		if len(bucket) != 0 {
			t.Fatalf("key %q expected empty, got %d", key, len(bucket))
		}
	}
}

func TestGroup_Partition(t *testing.T) {
	nodes := []any{
		node.New("i1", "icon"),
		node.New("t1", "tab"),
		nil,
		node.New("loose"),
		[]any{node.New("t2", "tab"), node.New("i2", "icon")},
	}
	sch := schema.Schema{
		{Name: "icon", Constraint: schema.Any()},
		{Name: "tab", Constraint: schema.Any()},
	}

	result, err := slots.Group(nodes, sch)
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	flat := node.Flatten(nodes)
	total := 0
	seen := make(map[node.Node]string)
	for key, bucket := range result {
		total += len(bucket)
		for _, n := range bucket {
			if prev, dup := seen[n]; dup {
				t.Fatalf("node assigned to both %q and %q", prev, key)
			}
			seen[n] = key
		}
	}
	if total != len(flat) {
		t.Fatalf("buckets hold %d nodes, flattened input has %d", total, len(flat))
	}

	names := func(bucket []node.Node) []string {
		out := make([]string, 0, len(bucket))
		for _, n := range bucket {
			out = append(out, n.(*node.Element).Name)
		}
		return out
	}
	if diff := cmp.Diff([]string{"i1", "i2"}, names(result.Children("icon"))); diff != "" {
		t.Fatalf("icon order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"t1", "t2"}, names(result.Children("tab"))); diff != "" {
		t.Fatalf("tab order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"loose"}, names(result.Rest())); diff != "" {
		t.Fatalf("rest mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_Idempotent(t *testing.T) {
	nodes := []any{
		node.New("i1", "icon"),
		node.New("loose"),
		[]any{node.New("t1", "tab")},
	}
	sch := schema.Schema{
		{Name: "icon", Constraint: schema.Exactly(1)},
		{Name: "tab", Constraint: schema.AtLeast(1)},
	}

	first, err := slots.Group(nodes, sch)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := slots.Group(nodes, sch)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("calls disagree (-first +second):\n%s", diff)
	}
}

func TestGroup_NilSchema(t *testing.T) {
	_, err := slots.Group(nil, nil)
	if !errors.Is(err, schema.ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}
}

func TestGroup_ReservedGroupName(t *testing.T) {
	sch := schema.Schema{{Name: "rest", Constraint: schema.Any()}}

	_, err := slots.Group(nil, sch)
	var reserved *schema.ReservedNameError
	if !errors.As(err, &reserved) {
		t.Fatalf("expected ReservedNameError, got %v", err)
	}
}

func TestMustGroup_PanicsOnViolation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	slots.MustGroup(nil, schema.Schema{{Name: "icon", Constraint: schema.Exactly(1)}})
}

func TestChildrenKey(t *testing.T) {
	if got := slots.ChildrenKey("icon"); got != "iconChildren" {
		t.Fatalf("unexpected key: %q", got)
	}
}

package slots

import "fmt"

// Kind identifies which cardinality bound a group violated.
type Kind string

const (
	KindMin Kind = "min"
	KindMax Kind = "max"
)

// CardinalityError reports the first declared group whose element count fell
// outside its bounds. Only the first violation is ever reported; validation
// aborts without checking later groups.
type CardinalityError struct {
	Group  string
	Kind   Kind
	Limit  int
	Actual int
}

func (e *CardinalityError) Error() string {
	noun := "elements"
	if e.Limit == 1 {
		noun = "element"
	}
	if e.Kind == KindMin {
		return fmt.Sprintf("Must have at least %d `%s` %s", e.Limit, e.Group, noun)
	}
	return fmt.Sprintf("Cannot have more than %d `%s` %s", e.Limit, e.Group, noun)
}

package schema

import (
	"errors"
	"fmt"
)

// ErrNilSchema rejects an absent schema before any classification work. The
// message matches the original contract surface verbatim.
var ErrNilSchema = errors.New("schema must be an object")

// ErrEmptyGroupName rejects a declared group with no name.
var ErrEmptyGroupName = errors.New("schema: group name is required")

// ReservedNameError reports a declared group colliding with the catch-all
// key, which would silently shadow the rest bucket in results.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("schema: group name %q is reserved for the catch-all bucket", e.Name)
}

// DuplicateGroupError reports the same group declared twice.
type DuplicateGroupError struct {
	Name string
}

func (e *DuplicateGroupError) Error() string {
	return fmt.Sprintf("schema: group %q declared more than once", e.Name)
}

package crds

import (
	"errors"
	"fmt"
)

var (
	// ErrOldValue is returned when an inserted value is superseded by the
	// record already stored under its label, per the overwrite predicate.
	ErrOldValue = errors.New("crds: value superseded by existing record")

	// ErrDuplicateValue is returned when an inserted value is hash-identical
	// to the record already stored under its label.
	ErrDuplicateValue = errors.New("crds: duplicate of existing record")

	// ErrResourceError is returned by Insert when the value cannot be
	// canonically encoded for hashing (an unsupported CrdsData type).
	ErrResourceError = errors.New("crds: resource allocation failed")
)

// assertf panics with a formatted message. It guards invariants that a
// correct caller can never violate — e.g. a secondary index entry
// pointing at a slot that does not exist — so a failure here is a bug in
// this package, not a runtime condition callers should handle.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("crds: invariant violated: "+format, args...))
	}
}

// Package diagctl holds the cross-package invariant-violation type.
// Spec.md §7.2 draws a hard line between input errors (reported,
// non-zero exit, pipeline never starts) and internal invariant
// violations (implementation bugs: duplicate macro-state id, a
// transition with an unknown source, a cycle whose event count
// doesn't match its edge count). The latter are never caught or
// masked — they abort immediately naming the violated invariant.
package diagctl

import "fmt"

// InvariantViolation is panicked, never returned, by code that detects
// one of its own construction invariants has broken.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated: %s: %s", e.Invariant, e.Detail)
}

// Violate panics with an InvariantViolation naming the broken
// invariant.
func Violate(invariant, detail string) {
	panic(&InvariantViolation{Invariant: invariant, Detail: detail})
}

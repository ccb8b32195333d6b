// Package search implements the parallel branch-and-bound engine: the
// best-first frontier, the branching rule, and the coordinator/worker
// work-order protocol that drives LP subproblems concurrently against
// independent LP sessions.
package search

import (
	"math"

	"github.com/costela/ipsolver/internal/lpsolver"
)

// Node is a branch-and-bound search node emitted from an LP-feasible
// subproblem that is not fully integral. ObjectiveVal is the LP relaxation
// value at this node's fixing, a valid lower bound for any integer
// completion below it.
type Node struct {
	ObjectiveVal float64

	// Fixed is the cumulative fixing vector at this node, length num_tests.
	Fixed []lpsolver.FixedStatus

	// LPValues is the LP relaxation's fractional solution at this node,
	// kept so the branching rule can pick a variable without re-solving.
	LPValues []float64
}

// less reports whether a has a smaller (better, for this minimization
// problem) objective than b, with a total, NaN-safe ordering so a heap
// comparator is always well-defined. NaN is treated as worse than any
// finite value or +Inf, since a NaN objective indicates a numerical failure
// upstream rather than a legitimate bound.
func less(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

// isIntegral reports whether every value in vs is within tol of an integer.
// This tolerant test replaces the naive "fractional part == 0" check, which
// is unreliable against LP solver floating-point output.
func isIntegral(vs []float64, tol float64) bool {
	for _, v := range vs {
		if math.Abs(v-math.Round(v)) > tol {
			return false
		}
	}
	return true
}

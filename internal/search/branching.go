package search

import (
	"math"

	"github.com/costela/ipsolver/internal/lpsolver"
)

// SelectBranchVariable picks the unfixed test variable whose LP value is
// closest to 1, i.e. the index minimizing |1 - lpValues[i]| over i with
// fixed[i] == Unassigned. Ties are broken by lowest index.
//
// Rationale: fixing a variable already near 1 toward present tends to
// change the LP objective least, producing tighter child bounds and more
// effective pruning early.
//
// An earlier iteration of this rule instead maximized (1 - lpValues[i])
// (furthest from 1); spec.md prescribes minimizing distance to 1, and this
// is that normative form. Keep the rule behind this one function so
// swapping back is a one-line change if experiments call for it.
//
// ok is false only when every index is already fixed, which should not
// happen when called on a fractional LP solution — callers should treat
// that as an invariant violation, not retry.
func SelectBranchVariable(fixed []lpsolver.FixedStatus, lpValues []float64) (idx int, ok bool) {
	best := math.Inf(1)
	found := false
	for i, status := range fixed {
		if status != lpsolver.Unassigned {
			continue
		}
		dist := math.Abs(1 - lpValues[i])
		if !found || dist < best {
			best = dist
			idx = i
			found = true
		}
	}
	return idx, found
}

package lpsolver

import "errors"

// ErrInfeasible is returned by Solve when the LP relaxation under the given
// fixing has no feasible point. It is a normal, expected outcome of a
// branch-and-bound node, not a fault.
var ErrInfeasible = errors.New("lpsolver: infeasible")

// LPSolution is the result of one successful LP solve: the objective value
// and the per-test-variable values, in test order.
type LPSolution struct {
	Objective float64
	Values    []float64
}

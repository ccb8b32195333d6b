// Package lpsolver wraps a continuous LP solve of the test-selection
// relaxation, exposing solve-under-fixing as its only operation. The
// underlying engine is gonum's pure-Go simplex implementation
// (gonum.org/v1/gonum/optimize/convex/lp); spec.md §6 describes the LP
// engine as an external collaborator specified only by interface, and this
// package is that interface's one concrete binding.
package lpsolver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// FixedStatus records, per test variable, whether a branch-and-bound node
// has pinned it to present (1), absent (0), or left it free.
type FixedStatus int

const (
	Unassigned FixedStatus = iota
	Present
	Absent
)

// Session holds the LP formulation of the test-selection problem:
//
//	minimize   sum_t cost[t] * x[t]
//	subject to sum_t table[t][c] * x[t] >= 1   for every distinguish column c
//	           0 <= x[t] <= 1
//
// Solve never mutates the Session: each call builds a temporary augmented
// system from the base constraints plus one equality row per fixed
// variable, solves it, and discards the augmentation — the persistent
// model's bounds are therefore always [0, 1] before and after any call,
// matching the fix/solve/unconditional-unfix contract in spec.md §4.2.
// A Session is not safe for concurrent use; each worker owns its own.
type Session struct {
	cost    []float64
	numVars int

	// baseC, baseA, baseB describe the fixed part of the equality-form
	// system: the >= 1 distinguish constraints and the x<=1 upper bounds,
	// each converted to an equality with a nonnegative slack variable.
	baseC []float64
	baseA *mat.Dense
	baseB []float64

	numConstraintRows int
}

// New builds the LP model for a problem with the given per-test costs and
// distinguish table (one row per test, one column per disease pair; entries
// are 0 or 1). It configures nothing engine-specific beyond the model
// itself: gonum's simplex is single-threaded by construction, so there is no
// separate "set_threads(1)" step to perform.
func New(cost []float64, table [][]int) (*Session, error) {
	numVars := len(cost)
	if numVars == 0 {
		return &Session{cost: cost, numVars: 0}, nil
	}

	numPairs := 0
	if len(table) > 0 {
		numPairs = len(table[0])
	}
	for _, row := range table {
		if len(row) != numPairs {
			return nil, fmt.Errorf("lpsolver: distinguish table rows have inconsistent width")
		}
	}
	if len(table) != numVars {
		return nil, fmt.Errorf("lpsolver: distinguish table has %d rows, want %d", len(table), numVars)
	}

	// total variables: numVars test vars, numPairs ">=1" slacks, numVars
	// "<=1" upper-bound slacks.
	total := numVars + numPairs + numVars

	c := make([]float64, total)
	copy(c, cost)

	rows := numPairs + numVars
	a := mat.NewDense(rows, total, nil)
	b := make([]float64, rows)

	// distinguish-pair rows: sum_t table[t][c]*x[t] - s_c = 1
	for col := 0; col < numPairs; col++ {
		for t := 0; t < numVars; t++ {
			if table[t][col] != 0 {
				a.Set(col, t, float64(table[t][col]))
			}
		}
		a.Set(col, numVars+col, -1)
		b[col] = 1
	}

	// upper-bound rows: x[t] + u_t = 1
	for t := 0; t < numVars; t++ {
		row := numPairs + t
		a.Set(row, t, 1)
		a.Set(row, numVars+numPairs+t, 1)
		b[row] = 1
	}

	return &Session{
		cost:              cost,
		numVars:           numVars,
		baseC:             c,
		baseA:             a,
		baseB:             b,
		numConstraintRows: rows,
	}, nil
}

// Solve solves the LP relaxation under the given fixing vector (length must
// equal the number of test variables) and returns the objective and
// per-test values. ErrInfeasible is returned, not wrapped, when the fixed
// subproblem has no feasible point; any other error is fatal (numerical
// failure, malformed input) and should propagate to the caller unchanged.
func (s *Session) Solve(fixed []FixedStatus) (LPSolution, error) {
	if len(fixed) != s.numVars {
		return LPSolution{}, fmt.Errorf("lpsolver: fixing vector has length %d, want %d", len(fixed), s.numVars)
	}
	if s.numVars == 0 {
		return LPSolution{Objective: 0, Values: nil}, nil
	}

	var extraRows [][]float64
	var extraB []float64
	for i, status := range fixed {
		switch status {
		case Present:
			row := make([]float64, len(s.baseC))
			row[i] = 1
			extraRows = append(extraRows, row)
			extraB = append(extraB, 1)
		case Absent:
			row := make([]float64, len(s.baseC))
			row[i] = 1
			extraRows = append(extraRows, row)
			extraB = append(extraB, 0)
		case Unassigned:
			// no fixing applied; bounds remain [0, 1] via the base system.
		default:
			return LPSolution{}, fmt.Errorf("lpsolver: invalid FixedStatus %d at index %d", status, i)
		}
	}

	totalRows := s.numConstraintRows + len(extraRows)
	totalCols := len(s.baseC)
	a := mat.NewDense(totalRows, totalCols, nil)
	a.Slice(0, s.numConstraintRows, 0, totalCols).(*mat.Dense).Copy(s.baseA)

	b := make([]float64, totalRows)
	copy(b, s.baseB)
	for i, row := range extraRows {
		r := s.numConstraintRows + i
		for col, v := range row {
			if v != 0 {
				a.Set(r, col, v)
			}
		}
		b[r] = extraB[i]
	}

	z, x, err := lp.Simplex(s.baseC, a, b, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) || errors.Is(err, lp.ErrUnbounded) {
			return LPSolution{}, ErrInfeasible
		}
		return LPSolution{}, fmt.Errorf("lpsolver: simplex solve failed: %w", err)
	}

	return LPSolution{
		Objective: z,
		Values:    append([]float64(nil), x[:s.numVars]...),
	}, nil
}

// NumVars returns the number of test variables in the model.
func (s *Session) NumVars() int {
	return s.numVars
}

package lpsolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildScenarioB returns the LP session for spec.md Scenario B: two tests,
// either one suffices to distinguish the only disease pair, but they have
// different costs.
func buildScenarioB(t *testing.T) *Session {
	t.Helper()
	// table: one column (disease pair 0,1), both tests distinguish it.
	table := [][]int{{1}, {1}}
	s, err := New([]float64{3, 7}, table)
	require.NoError(t, err)
	return s
}

func TestSession_Solve_ScenarioB_Unfixed(t *testing.T) {
	s := buildScenarioB(t)

	fixed := []FixedStatus{Unassigned, Unassigned}
	sol, err := s.Solve(fixed)
	require.NoError(t, err)

	// cheapest single test (cost 3) suffices; LP relaxation finds the
	// integral optimum directly here since either var alone satisfies the
	// >=1 constraint at minimal cost.
	assert.InDelta(t, 3, sol.Objective, 1e-9)
}

func TestSession_Solve_FixingNeutrality(t *testing.T) {
	s := buildScenarioB(t)

	unfixed := []FixedStatus{Unassigned, Unassigned}
	before, err := s.Solve(unfixed)
	require.NoError(t, err)

	_, err = s.Solve([]FixedStatus{Present, Absent})
	require.NoError(t, err)

	after, err := s.Solve(unfixed)
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestSession_Solve_Infeasible(t *testing.T) {
	// a single test that does not distinguish the only pair: all-zero
	// column, spec.md §3's DistinguishTable invariant violation.
	table := [][]int{{0}}
	s, err := New([]float64{1}, table)
	require.NoError(t, err)

	_, err = s.Solve([]FixedStatus{Unassigned})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSession_Solve_FixedAbsentForcesOtherPresent(t *testing.T) {
	s := buildScenarioB(t)

	sol, err := s.Solve([]FixedStatus{Absent, Unassigned})
	require.NoError(t, err)
	assert.InDelta(t, 7, sol.Objective, 1e-9)
	assert.InDelta(t, 1, sol.Values[1], 1e-9)
}

func TestSession_Solve_BothFixedAbsentInfeasible(t *testing.T) {
	s := buildScenarioB(t)

	_, err := s.Solve([]FixedStatus{Absent, Absent})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSession_Solve_FractionalForcesBranching(t *testing.T) {
	// Scenario E from spec.md: 3 tests, 4 diseases, costs all 1.
	// distinguish table derived from A = [[0,0,1,1],[0,1,0,1],[0,1,1,0]]
	// pairs: (0,1)(0,2)(0,3)(1,2)(1,3)(2,3)
	table := [][]int{
		{0, 1, 1, 1, 1, 0}, // test 0: row [0,0,1,1]
		{1, 0, 1, 1, 0, 1}, // test 1: row [0,1,0,1]
		{1, 1, 0, 0, 1, 1}, // test 2: row [0,1,1,0]
	}
	s, err := New([]float64{1, 1, 1}, table)
	require.NoError(t, err)

	sol, err := s.Solve([]FixedStatus{Unassigned, Unassigned, Unassigned})
	require.NoError(t, err)

	// every column is covered by exactly two of the three tests, so the LP
	// relaxation can satisfy every constraint with each test fractionally
	// selected rather than committing any single test to 1 or 0 — the
	// symmetric assignment drives the objective below the integer optimum
	// of 2 (any two whole tests suffice, see TestSelectBranchVariable-style
	// branching that would follow in the coordinator).
	assert.Less(t, sol.Objective, 2.0)
	for _, v := range sol.Values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.False(t, isIntegralForTest(sol.Values))
}

func isIntegralForTest(vs []float64) bool {
	for _, v := range vs {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}

func TestSession_NumVars(t *testing.T) {
	s := buildScenarioB(t)
	assert.Equal(t, 2, s.NumVars())
}

func TestNew_RejectsMismatchedTableWidth(t *testing.T) {
	_, err := New([]float64{1, 1}, [][]int{{1, 0}, {1}})
	assert.Error(t, err)
}

func TestNew_RejectsWrongRowCount(t *testing.T) {
	_, err := New([]float64{1, 1}, [][]int{{1}})
	assert.Error(t, err)
}

func TestSession_ZeroVariables(t *testing.T) {
	s, err := New(nil, nil)
	require.NoError(t, err)

	sol, err := s.Solve(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sol.Objective)
	assert.Empty(t, sol.Values)
}

package search

import (
	"time"

	"github.com/costela/ipsolver/internal/lpsolver"
)

// WorkOrder is sent from the Coordinator to a Worker over the work channel.
type WorkOrder struct {
	// Node is set for VisitNode orders; zero value together with NoMore
	// true signals shutdown.
	Node *Node

	// NoMore, when true, tells the worker no further orders are coming; the
	// worker should return its stats. In practice the Coordinator achieves
	// this by closing the channel, but NoMore is kept so a worker reading a
	// zero-value WorkOrder off a closed channel and one reading an explicit
	// sentinel behave identically.
	NoMore bool
}

// responseKind distinguishes the three outcomes a child subproblem can
// produce.
type responseKind int

const (
	respInfeasible responseKind = iota
	respIntegral
	respFractional
)

// WorkResponse is sent from a Worker back to the Coordinator once per child
// produced by a VisitNode order; every VisitNode produces exactly two.
type WorkResponse struct {
	Kind responseKind
	Node *Node // set for respIntegral and respFractional
}

// WorkerStats accumulates per-worker counters, returned when the worker
// exits.
type WorkerStats struct {
	ID int

	NodesVisited int
	SolvesRun    int

	WaitTime  time.Duration
	SolveTime time.Duration
}

// Worker owns a single LPSession and consumes VisitNode orders from workIn,
// emitting exactly two WorkResponses per order to responseOut. A Worker
// never looks at the coordinator's incumbent — it has no visibility into
// it — and never prunes; all pruning happens in the Coordinator when
// responses are reintegrated.
type Worker struct {
	id          int
	session     *lpsolver.Session
	tolerance   float64
	workIn      <-chan WorkOrder
	responseOut chan<- WorkResponse

	stats WorkerStats
}

// NewWorker constructs a Worker with its own LPSession. tolerance is the
// integrality tolerance used to classify LP solutions.
func NewWorker(id int, session *lpsolver.Session, tolerance float64, workIn <-chan WorkOrder, responseOut chan<- WorkResponse) *Worker {
	return &Worker{
		id:          id,
		session:     session,
		tolerance:   tolerance,
		workIn:      workIn,
		responseOut: responseOut,
		stats:       WorkerStats{ID: id},
	}
}

// Run blocks on workIn until it is closed (or a NoMore order arrives),
// processing VisitNode orders as they come in, and returns the
// accumulated WorkerStats. If a fatal (non-infeasible) LP engine error
// occurs while solving a child, Run stops processing and returns that
// error alongside the stats gathered so far; the Coordinator surfaces it
// at join time rather than letting it unwind as a process-killing panic,
// matching how localSearch's identical error path already returns a plain
// Go error up through seed/Run.
func (w *Worker) Run() (WorkerStats, error) {
	for {
		waitStart := time.Now()
		order, open := <-w.workIn
		w.stats.WaitTime += time.Since(waitStart)

		if !open || order.NoMore {
			return w.stats, nil
		}

		responses, err := w.visit(order.Node)
		if err != nil {
			return w.stats, err
		}
		for _, resp := range responses {
			w.responseOut <- resp
		}
		w.stats.NodesVisited++
	}
}

// visit performs the two-way branch on node: it selects a branching
// variable, constructs the two child fixing vectors, solves each against
// the worker's LPSession, and classifies the outcome. It returns exactly
// two responses, in no particular order, unless a fatal LP engine error
// occurs, in which case it returns that error instead.
func (w *Worker) visit(node *Node) ([2]WorkResponse, error) {
	branchOn, ok := SelectBranchVariable(node.Fixed, node.LPValues)
	if !ok {
		panic("search: branching rule found no unfixed variable on a fractional node; this is an invariant violation")
	}

	var responses [2]WorkResponse
	decisions := [2]lpsolver.FixedStatus{lpsolver.Present, lpsolver.Absent}
	for i, decision := range decisions {
		childFixed := make([]lpsolver.FixedStatus, len(node.Fixed))
		copy(childFixed, node.Fixed)
		childFixed[branchOn] = decision

		resp, err := w.solveChild(childFixed)
		if err != nil {
			return responses, err
		}
		responses[i] = resp
	}
	return responses, nil
}

func (w *Worker) solveChild(fixed []lpsolver.FixedStatus) (WorkResponse, error) {
	solveStart := time.Now()
	sol, err := w.session.Solve(fixed)
	w.stats.SolveTime += time.Since(solveStart)
	w.stats.SolvesRun++

	if err != nil {
		if err == lpsolver.ErrInfeasible {
			return WorkResponse{Kind: respInfeasible}, nil
		}
		// Any other LP engine failure is fatal and must surface to the
		// coordinator, not be silently swallowed as an infeasible branch.
		return WorkResponse{}, err
	}

	child := &Node{
		ObjectiveVal: sol.Objective,
		Fixed:        fixed,
		LPValues:     sol.Values,
	}

	if isIntegral(sol.Values, w.tolerance) {
		return WorkResponse{Kind: respIntegral, Node: child}, nil
	}
	return WorkResponse{Kind: respFractional, Node: child}, nil
}

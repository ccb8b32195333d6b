package search

import (
	"context"
	"errors"
	"math"
	"runtime"
	"time"

	"github.com/costela/ipsolver/internal/lpsolver"
)

// keepInChannel bounds how many orders the coordinator keeps queued ahead
// of the workers: at most one unread VisitNode order sits in the channel at
// a time, so the frontier stays centralized and pruning stays prompt. See
// spec.md §5 ("Backpressure").
const keepInChannel = 1

// DefaultTolerance is the integrality tolerance used when none is supplied:
// a value v is treated as integral iff |v - round(v)| <= DefaultTolerance.
const DefaultTolerance = 1e-9

// ErrNoFeasibleSolution is returned when the search space is exhausted
// without ever finding a feasible integer solution (the incumbent never
// improved from +Inf).
var ErrNoFeasibleSolution = errors.New("search: no integer feasible solution found")

// ErrNotProvenOptimal is returned alongside a best-effort incumbent when the
// context passed to Run is cancelled before the search reaches quiescence.
var ErrNotProvenOptimal = errors.New("search: cancelled before optimality was proven")

// Result is the outcome of a completed (or cancelled) search.
type Result struct {
	Objective float64
	Values    []float64
}

// Coordinator owns the frontier, the incumbent, and the worker pool. It
// dispatches VisitNode orders to workers over a channel, integrates their
// responses, and terminates once no node remains open and no order is
// in flight.
type Coordinator struct {
	numVars    int
	tolerance  float64
	workers    int
	newSession func() (*lpsolver.Session, error)
	instr      Instrumentation

	frontier     *Frontier
	incumbent    *Node
	incumbentObj float64
	inFlight     int
}

// NewCoordinator builds a Coordinator for a problem with numVars test
// variables. newSession must construct a fresh, independent LPSession for
// the same problem each time it is called (once per worker plus once for
// the coordinator's own root seeding). workers is clamped to at least 1.
// instr may be nil, in which case events are discarded.
func NewCoordinator(numVars int, tolerance float64, workers int, newSession func() (*lpsolver.Session, error), instr Instrumentation) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	if instr == nil {
		instr = NoopInstrumentation{}
	}
	return &Coordinator{
		numVars:      numVars,
		tolerance:    tolerance,
		workers:      workers,
		newSession:   newSession,
		instr:        instr,
		frontier:     NewFrontier(),
		incumbentObj: math.Inf(1),
	}
}

// DefaultWorkerCount returns the number of worker goroutines the
// coordinator should use when the caller has no preference: the number of
// available cores minus one, floored at one.
func DefaultWorkerCount() int {
	w := runtime.NumCPU() - 1
	if w < 1 {
		w = 1
	}
	return w
}

// Run seeds the root, spawns the worker pool, and runs the dispatch/drain
// loop to quiescence. It returns the best incumbent found. If ctx is
// cancelled before quiescence, Run stops dispatching, drains in-flight
// responses, and returns the current incumbent together with
// ErrNotProvenOptimal. If the search space is exhausted with no feasible
// integer solution, it returns ErrNoFeasibleSolution.
func (c *Coordinator) Run(ctx context.Context) (Result, error) {
	rootSession, err := c.newSession()
	if err != nil {
		return Result{}, err
	}

	if err := c.seed(rootSession); err != nil {
		return Result{}, err
	}

	if c.numVars == 0 {
		// No test variables at all: the root itself is the (trivially
		// integral) solution, handled entirely by seed.
		return c.finish()
	}

	workIn := make(chan WorkOrder, keepInChannel)
	responseOut := make(chan WorkResponse, c.workers*2)

	workers := make([]*Worker, c.workers)
	done := make(chan WorkerStats, c.workers)
	// workerErr is buffered to the worker count so a worker that hits a
	// fatal LP engine error can always report it and reach done, even
	// after mainLoop has stopped reading from workerErr.
	workerErr := make(chan error, c.workers)
	for i := 0; i < c.workers; i++ {
		session, err := c.newSession()
		if err != nil {
			close(workIn)
			return Result{}, err
		}
		w := NewWorker(i, session, c.tolerance, workIn, responseOut)
		workers[i] = w
		go func(w *Worker) {
			stats, err := w.Run()
			if err != nil {
				workerErr <- err
			}
			done <- stats
		}(w)
	}

	cancelled, fatalErr := c.mainLoop(ctx, workIn, responseOut, workerErr)

	close(workIn)
	for range workers {
		<-done
	}

	if fatalErr != nil {
		return Result{}, fatalErr
	}

	if cancelled {
		res, _ := c.finish()
		return res, ErrNotProvenOptimal
	}

	return c.finish()
}

// seed performs the coordinator-local synchronous seeding step: construct
// the all-Unassigned root fixing with an artificial 0.5 LP value per
// variable (the root has no prior LP solution, so the branching rule has no
// information; 0.5 breaks the tie by smallest index, deterministically),
// pick a branch variable, and search both directions before any worker
// engages.
func (c *Coordinator) seed(rootSession *lpsolver.Session) error {
	if c.numVars == 0 {
		sol, err := rootSession.Solve(nil)
		if err != nil {
			if err == lpsolver.ErrInfeasible {
				return nil
			}
			return err
		}
		c.tryUpdateIncumbent(&Node{ObjectiveVal: sol.Objective, Fixed: nil, LPValues: nil})
		return nil
	}

	rootFixed := make([]lpsolver.FixedStatus, c.numVars)
	rootLPValues := make([]float64, c.numVars)
	for i := range rootLPValues {
		rootLPValues[i] = 0.5
	}

	branchOn, ok := SelectBranchVariable(rootFixed, rootLPValues)
	if !ok {
		return errors.New("search: no branchable variable at root despite nonzero variable count")
	}

	for _, decision := range [2]lpsolver.FixedStatus{lpsolver.Present, lpsolver.Absent} {
		fixed := make([]lpsolver.FixedStatus, c.numVars)
		copy(fixed, rootFixed)
		fixed[branchOn] = decision

		if err := c.localSearch(rootSession, fixed); err != nil {
			return err
		}
	}
	return nil
}

// localSearch mirrors a worker's per-child logic but runs synchronously on
// the coordinator's own session; it is used only for root seeding.
func (c *Coordinator) localSearch(session *lpsolver.Session, fixed []lpsolver.FixedStatus) error {
	sol, err := session.Solve(fixed)
	if err != nil {
		if err == lpsolver.ErrInfeasible {
			return nil
		}
		return err
	}

	if sol.Objective >= c.incumbentObj {
		return nil
	}

	node := &Node{ObjectiveVal: sol.Objective, Fixed: fixed, LPValues: sol.Values}

	if isIntegral(sol.Values, c.tolerance) {
		c.tryUpdateIncumbent(node)
		return nil
	}

	c.frontier.Push(node)
	c.instr.NodeQueued(node)
	return nil
}

// mainLoop alternates bounded dispatch with non-blocking response drain
// until quiescence (in_flight == 0 and the frontier is empty), ctx is
// cancelled, or a worker reports a fatal (non-infeasible) LP engine error on
// workerErr. It returns (true, nil) on cancellation, (false, err) on a
// fatal worker error, and (false, nil) on ordinary quiescence.
func (c *Coordinator) mainLoop(ctx context.Context, workIn chan<- WorkOrder, responseOut <-chan WorkResponse, workerErr <-chan error) (cancelled bool, fatalErr error) {
	for {
		select {
		case err := <-workerErr:
			// A worker has already stopped consuming work after this
			// failure, so in_flight will never drain to zero on its own;
			// stop dispatching and surface the error instead of draining.
			return false, err
		default:
		}

		if err := ctx.Err(); err != nil {
			c.drainRemaining(responseOut)
			return true, nil
		}

		didWork := false

		// Dispatch phase.
		for len(workIn) < keepInChannel {
			n := c.frontier.Pop()
			if n == nil {
				break
			}
			if n.ObjectiveVal >= c.incumbentObj {
				// The frontier is sorted by objective: every remaining
				// node is also dominated.
				c.instr.NodePruned(n)
				c.frontier.Clear()
				break
			}

			workIn <- WorkOrder{Node: n}
			c.inFlight += 2
			didWork = true
		}

		// Integrate phase: drain non-blockingly.
	drain:
		for {
			select {
			case resp := <-responseOut:
				c.integrate(resp)
				didWork = true
			default:
				break drain
			}
		}

		if c.inFlight == 0 && c.frontier.Len() == 0 {
			return false, nil
		}

		if !didWork {
			// Neither drain nor dispatch did anything this iteration; a
			// brief park saves CPU without changing observable behavior
			// (spec.md §5).
			time.Sleep(time.Millisecond)
		}
	}
}

// drainRemaining blocks until every in-flight response has arrived, so a
// cancelled Run still leaves the worker pool in a well-defined state before
// the work channel is closed.
func (c *Coordinator) drainRemaining(responseOut <-chan WorkResponse) {
	for c.inFlight > 0 {
		resp := <-responseOut
		c.inFlight--
		switch resp.Kind {
		case respIntegral:
			c.tryUpdateIncumbent(resp.Node)
		case respInfeasible:
		case respFractional:
			// Cancellation discards newly discovered frontier nodes rather
			// than reinstating them: the search is stopping, not merely
			// pausing.
		}
	}
}

func (c *Coordinator) integrate(resp WorkResponse) {
	c.inFlight--
	switch resp.Kind {
	case respInfeasible:
		return
	case respIntegral:
		c.tryUpdateIncumbent(resp.Node)
	case respFractional:
		if resp.Node.ObjectiveVal < c.incumbentObj {
			c.frontier.Push(resp.Node)
			c.instr.NodeQueued(resp.Node)
		} else {
			c.instr.NodePruned(resp.Node)
		}
	}
}

func (c *Coordinator) tryUpdateIncumbent(n *Node) {
	if n.ObjectiveVal < c.incumbentObj {
		c.incumbent = n
		c.incumbentObj = n.ObjectiveVal
		c.instr.IncumbentUpdated(n)
	}
}

func (c *Coordinator) finish() (Result, error) {
	if c.incumbent == nil {
		return Result{}, ErrNoFeasibleSolution
	}
	return Result{
		Objective: c.incumbent.ObjectiveVal,
		Values:    c.incumbent.LPValues,
	}, nil
}

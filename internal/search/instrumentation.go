package search

import "log"

// Instrumentation receives notifications of coordinator-level events. It
// exists for optional tracing (the CLI's -v flag); the core algorithm never
// depends on its implementation.
type Instrumentation interface {
	// NodeQueued is called whenever a node is pushed onto the frontier.
	NodeQueued(n *Node)

	// NodePruned is called whenever a popped or reintegrated node is
	// discarded because its objective is no better than the incumbent.
	NodePruned(n *Node)

	// IncumbentUpdated is called whenever the incumbent strictly improves.
	IncumbentUpdated(n *Node)
}

// NoopInstrumentation discards every event. It is the default.
type NoopInstrumentation struct{}

func (NoopInstrumentation) NodeQueued(*Node)       {}
func (NoopInstrumentation) NodePruned(*Node)       {}
func (NoopInstrumentation) IncumbentUpdated(*Node) {}

// LogInstrumentation writes one line per event to an *log.Logger, in the
// terse style of the teacher's own debug traces.
type LogInstrumentation struct {
	Logger *log.Logger
}

func (l LogInstrumentation) NodeQueued(n *Node) {
	l.Logger.Printf("queued node obj=%.4f", n.ObjectiveVal)
}

func (l LogInstrumentation) NodePruned(n *Node) {
	l.Logger.Printf("pruned node obj=%.4f", n.ObjectiveVal)
}

func (l LogInstrumentation) IncumbentUpdated(n *Node) {
	l.Logger.Printf("new incumbent obj=%.4f", n.ObjectiveVal)
}

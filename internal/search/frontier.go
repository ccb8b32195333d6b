package search

import "container/heap"

// Frontier is a best-first priority queue of open SearchNodes, ordered so
// that the node with the smallest LP objective (the tightest lower bound)
// pops first. container/heap is a min-heap by construction, so this is a
// direct min-heap over ObjectiveVal (the Rust original instead relies on a
// max-heap over a negated comparator, since Rust's BinaryHeap only pops the
// maximum; Go's heap.Interface needs no such inversion). Frontier is owned
// exclusively by the Coordinator — it is never shared across goroutines.
type Frontier struct {
	h nodeHeap
}

// NewFrontier returns an empty Frontier.
func NewFrontier() *Frontier {
	f := &Frontier{}
	heap.Init(&f.h)
	return f
}

// Push adds n to the frontier.
func (f *Frontier) Push(n *Node) {
	heap.Push(&f.h, n)
}

// Pop removes and returns the node with the smallest objective value, or
// nil if the frontier is empty.
func (f *Frontier) Pop() *Node {
	if f.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&f.h).(*Node)
}

// Peek returns the node with the smallest objective value without removing
// it, or nil if the frontier is empty.
func (f *Frontier) Peek() *Node {
	if f.h.Len() == 0 {
		return nil
	}
	return f.h[0]
}

// Len returns the number of open nodes.
func (f *Frontier) Len() int {
	return f.h.Len()
}

// Clear discards every open node, releasing them for garbage collection.
func (f *Frontier) Clear() {
	f.h = nil
}

// nodeHeap implements container/heap.Interface as a min-heap over objective
// value, so the smallest objective is always at the root.
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	// smallest objective should surface first from Pop.
	return less(h[i].ObjectiveVal, h[j].ObjectiveVal)
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(*Node))
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

package search

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontier_PopsInNonDecreasingOrder(t *testing.T) {
	f := NewFrontier()
	values := []float64{5.0, 1.0, 3.0, 1.0001, 0.9, math.NaN(), -2.0}
	for _, v := range values {
		f.Push(&Node{ObjectiveVal: v})
	}

	var popped []float64
	for f.Len() > 0 {
		n := f.Pop()
		popped = append(popped, n.ObjectiveVal)
	}

	// every non-NaN value must come out in non-decreasing order; NaN sorts
	// last since it is treated as worse than any finite value.
	var lastFinite float64 = math.Inf(-1)
	sawNaN := false
	for _, v := range popped {
		if math.IsNaN(v) {
			sawNaN = true
			continue
		}
		assert.False(t, sawNaN, "a NaN objective popped before a finite one")
		assert.GreaterOrEqual(t, v, lastFinite)
		lastFinite = v
	}
}

func TestFrontier_PopEmptyReturnsNil(t *testing.T) {
	f := NewFrontier()
	assert.Nil(t, f.Pop())
}

func TestFrontier_PeekDoesNotRemove(t *testing.T) {
	f := NewFrontier()
	f.Push(&Node{ObjectiveVal: 3})
	f.Push(&Node{ObjectiveVal: 1})

	assert.Equal(t, 1.0, f.Peek().ObjectiveVal)
	assert.Equal(t, 2, f.Len())
}

func TestFrontier_ClearEmptiesQueue(t *testing.T) {
	f := NewFrontier()
	f.Push(&Node{ObjectiveVal: 1})
	f.Push(&Node{ObjectiveVal: 2})
	f.Clear()
	assert.Equal(t, 0, f.Len())
	assert.Nil(t, f.Pop())
}

func TestFrontier_RandomizedOrdering(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	f := NewFrontier()
	n := 200
	for i := 0; i < n; i++ {
		f.Push(&Node{ObjectiveVal: rnd.NormFloat64()})
	}

	last := math.Inf(-1)
	for f.Len() > 0 {
		v := f.Pop().ObjectiveVal
		assert.GreaterOrEqual(t, v, last)
		last = v
	}
}

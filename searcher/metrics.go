package searcher

import "sync/atomic"

// Metrics counts search work across invocations. Counters are atomic so
// one Metrics may be shared by searchers running on several goroutines.
type Metrics struct {
	nodes   atomic.Int64
	cutoffs atomic.Int64
}

func (m *Metrics) addNode() {
	if m != nil {
		m.nodes.Add(1)
	}
}

func (m *Metrics) addCutoff() {
	if m != nil {
		m.cutoffs.Add(1)
	}
}

// Nodes returns the number of tree nodes evaluated so far.
func (m *Metrics) Nodes() int64 {
	return m.nodes.Load()
}

// Cutoffs returns the number of alpha-beta prunes so far.
func (m *Metrics) Cutoffs() int64 {
	return m.cutoffs.Load()
}

// Reset zeroes the counters.
func (m *Metrics) Reset() {
	m.nodes.Store(0)
	m.cutoffs.Store(0)
}

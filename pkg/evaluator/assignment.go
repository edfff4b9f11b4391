package evaluator

import "github.com/anonproto/circuitsim/pkg/catalog"

// Assignment maps each download to the circuit currently chosen for it. It
// need not be total: a download absent from the map is unassigned, which
// Integrate and SolveSteadyState silently skip — this is what lets the
// greedy and DWC strategies build an Assignment up one download at a time.
type Assignment map[catalog.DownloadHandle]catalog.CircuitHandle

// Clone returns a shallow copy, safe for the caller to mutate without
// affecting the original.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for d, c := range a {
		out[d] = c
	}
	return out
}

// DownloadResult is the evaluator's per-download output: the throughput it
// was assigned in the most recently solved steady state, and the relay
// that constrained it. Per design note §9, this replaces the reference
// implementation's mutable download.bandwidth/bottleneck fields with a
// side-table keyed by handle, so evaluation stays a pure function of its
// inputs and is safe to run concurrently over independent Assignments.
type DownloadResult struct {
	Bandwidth     float64
	Bottleneck    catalog.RelayHandle
	HasBottleneck bool
}

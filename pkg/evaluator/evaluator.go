// Package evaluator computes max-min fair per-download throughput for a
// fixed active set under a fixed circuit Assignment, and integrates that
// throughput over a Timeline to score a full Assignment.
package evaluator

import (
	"math"
	"sort"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/timeline"
)

// drainEpsilon is the residual threshold below which a relay is considered
// fully drained and removed from the active set (§4.3.1 step 2).
const drainEpsilon = 1e-6

// SteadyState is the result of one max-min fair solve over a fixed active
// set (§4.3.1).
type SteadyState struct {
	// Results holds the assigned bandwidth and bottleneck for every
	// download in the active set that had an assignment.
	Results map[catalog.DownloadHandle]DownloadResult
	// Total is the sum of Results[*].Bandwidth — the instantaneous
	// aggregate throughput of this active set.
	Total float64
	// Weights records load(r)/share at the moment r became a bottleneck.
	// Relays that never became a bottleneck have no entry.
	Weights map[catalog.RelayHandle]float64
	// AvailableBandwidth records, per relay touched by the active set's
	// circuits, its surviving residual; relays never touched are absent
	// here (callers that need every relay's figure should treat an
	// absent entry as the relay's full, untouched capacity).
	AvailableBandwidth map[catalog.RelayHandle]float64
}

// relayState is the solver's mutable per-relay bookkeeping for one call to
// SolveSteadyState.
type relayState struct {
	residual   float64
	downloads  map[catalog.DownloadHandle]struct{}
}

// SolveSteadyState computes the max-min fair steady state for the given
// active set under assignment (§4.3.1). Downloads in active without an
// assignment entry are ignored (they are not yet committed, as happens
// mid-build in the greedy and DWC strategies).
//
// It returns ErrNoBottleneck if active relays remain but none can be
// selected (should not happen given a well-formed active set), and
// ErrResidualAfterDrain if the chosen bottleneck is not fully cleared
// after a step — both indicate a solver bug, not bad input (§7).
func SolveSteadyState(cat *catalog.Catalog, active []catalog.DownloadHandle, assignment Assignment) (SteadyState, error) {
	relays := make(map[catalog.RelayHandle]*relayState)
	circuits := make(map[catalog.DownloadHandle]catalog.Circuit, len(active))

	for _, d := range active {
		ch, ok := assignment[d]
		if !ok {
			continue
		}
		circ := cat.Circuit(ch)
		circuits[d] = circ
		for _, r := range circ.Relays() {
			rs, ok := relays[r]
			if !ok {
				rs = &relayState{
					residual:  float64(cat.Relay(r).Capacity),
					downloads: make(map[catalog.DownloadHandle]struct{}),
				}
				relays[r] = rs
			}
			rs.downloads[d] = struct{}{}
		}
	}

	results := make(map[catalog.DownloadHandle]DownloadResult, len(circuits))
	weights := make(map[catalog.RelayHandle]float64)
	availableBandwidth := make(map[catalog.RelayHandle]float64, len(relays))

	activeRelays := make(map[catalog.RelayHandle]struct{}, len(relays))
	for r := range relays {
		activeRelays[r] = struct{}{}
	}

	for len(activeRelays) > 0 {
		bottleneck, share, ok := chooseBottleneck(relays, activeRelays)
		if !ok {
			return SteadyState{}, ErrNoBottleneck
		}

		dSet := relays[bottleneck].downloads
		touched := make([]catalog.DownloadHandle, 0, len(dSet))
		for d := range dSet {
			touched = append(touched, d)
		}
		weights[bottleneck] = float64(len(touched)) / share

		for _, d := range orderedDownloads(touched) {
			results[d] = DownloadResult{Bandwidth: share, Bottleneck: bottleneck, HasBottleneck: true}
			circ := circuits[d]
			for _, r := range circ.Relays() {
				rs, ok := relays[r]
				if !ok {
					continue
				}
				rs.residual -= share
				if rs.residual < drainEpsilon {
					delete(activeRelays, r)
				}
				delete(rs.downloads, d)
				if len(rs.downloads) == 0 {
					delete(activeRelays, r)
				}
			}
		}

		if _, stillActive := activeRelays[bottleneck]; stillActive {
			return SteadyState{}, ErrResidualAfterDrain
		}
	}

	var total float64
	for _, res := range results {
		total += res.Bandwidth
	}
	for r, rs := range relays {
		availableBandwidth[r] = rs.residual
	}

	return SteadyState{
		Results:            results,
		Total:              total,
		Weights:            weights,
		AvailableBandwidth: availableBandwidth,
	}, nil
}

// chooseBottleneck finds the active relay minimising residual/load, the
// max-min choke point, with ties broken by ascending handle (the first
// encountered in natural iteration order).
func chooseBottleneck(relays map[catalog.RelayHandle]*relayState, activeRelays map[catalog.RelayHandle]struct{}) (catalog.RelayHandle, float64, bool) {
	ordered := make([]catalog.RelayHandle, 0, len(activeRelays))
	for r := range activeRelays {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	best := catalog.RelayHandle(0)
	bestRatio := math.Inf(1)
	found := false
	for _, r := range ordered {
		rs := relays[r]
		load := len(rs.downloads)
		if load == 0 {
			continue
		}
		ratio := rs.residual / float64(load)
		if ratio < bestRatio {
			bestRatio = ratio
			best = r
			found = true
		}
	}
	return best, bestRatio, found
}

// orderedDownloads returns ds sorted ascending, for deterministic
// result-assignment order within a single bottleneck step.
func orderedDownloads(ds []catalog.DownloadHandle) []catalog.DownloadHandle {
	out := append([]catalog.DownloadHandle(nil), ds...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Integrate walks tl in tick order, accumulating the steady-state
// throughput of each inter-tick interval, and folding in arrivals and
// departures at each tick (§4.3.2). The result is the fitness of
// assignment over the given catalog and timeline. A download that starts
// without a prior assignment entry is silently skipped, which lets
// callers integrate over a partially built Assignment.
func Integrate(cat *catalog.Catalog, tl timeline.Timeline, assignment Assignment) (float64, error) {
	active := make(map[catalog.DownloadHandle]struct{})

	var (
		total      float64
		prevTotal  float64
		prevTick   int64
		haveEntry  bool
	)

	for _, tick := range tl.Ticks {
		if haveEntry {
			total += prevTotal * float64(tick-prevTick) / 1000.0
		}

		for _, d := range tl.DownloadsAt(tick) {
			dl := cat.Download(d)
			if dl.Start == tick {
				if _, assigned := assignment[d]; !assigned {
					continue
				}
				active[d] = struct{}{}
			}
		}
		for _, d := range tl.DownloadsAt(tick) {
			dl := cat.Download(d)
			if dl.End == tick {
				delete(active, d)
			}
		}

		activeList := make([]catalog.DownloadHandle, 0, len(active))
		for d := range active {
			activeList = append(activeList, d)
		}

		ss, err := SolveSteadyState(cat, activeList, assignment)
		if err != nil {
			return 0, err
		}
		prevTotal = ss.Total
		prevTick = tick
		haveEntry = true
	}

	return total, nil
}

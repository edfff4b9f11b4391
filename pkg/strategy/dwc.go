package strategy

import (
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/evaluator"
	"github.com/anonproto/circuitsim/pkg/timeline"
)

// RunDWC performs an online, tick-ordered traversal of the timeline,
// choosing each arriving download's circuit by the congestion signals the
// evaluator produces for the active set that precedes it (§4.4.3).
func RunDWC(cat *catalog.Catalog, tl timeline.Timeline, threads int) (evaluator.Assignment, error) {
	if threads < 1 {
		threads = 1
	}

	assignment := make(evaluator.Assignment, cat.NumDownloads())
	active := make(map[catalog.DownloadHandle]struct{})

	for _, tick := range tl.Ticks {
		for _, d := range tl.DownloadsAt(tick) {
			if cat.Download(d).End == tick {
				delete(active, d)
			}
		}

		arrivals := make([]catalog.DownloadHandle, 0)
		for _, d := range tl.DownloadsAt(tick) {
			if cat.Download(d).Start == tick {
				arrivals = append(arrivals, d)
			}
		}
		sort.Slice(arrivals, func(i, j int) bool { return arrivals[i] < arrivals[j] })

		for _, d := range arrivals {
			activeList := make([]catalog.DownloadHandle, 0, len(active))
			for h := range active {
				activeList = append(activeList, h)
			}
			ss, err := evaluator.SolveSteadyState(cat, activeList, assignment)
			if err != nil {
				return nil, err
			}

			best := chooseDWCCandidate(cat, cat.Download(d).Pool, ss, threads)
			assignment[d] = best
			active[d] = struct{}{}
		}
	}

	return assignment, nil
}

type dwcCandidate struct {
	handle catalog.CircuitHandle
	weight float64
	bw     float64
	found  bool
}

// chooseDWCCandidate scores every circuit in pool by weight(c) ascending,
// then bw(c) descending, then lexicographic (guard, middle, exit) relay
// name, and returns the winner. Scoring is partitioned across threads
// contiguous index ranges, each worker reducing its own slice before the
// master reduces across workers (§4.4.3 / §5).
func chooseDWCCandidate(cat *catalog.Catalog, circuitPool []catalog.CircuitHandle, ss evaluator.SteadyState, threads int) catalog.CircuitHandle {
	chunks := partition(len(circuitPool), threads)

	results := make([]dwcCandidate, len(chunks))
	p := pool.New().WithMaxGoroutines(threads)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		p.Go(func() {
			results[i] = bestInRange(cat, circuitPool[chunk[0]:chunk[1]], ss)
		})
	}
	p.Wait()

	var winner dwcCandidate
	for _, r := range results {
		if !r.found {
			continue
		}
		if !winner.found || betterDWC(cat, r, winner) {
			winner = r
		}
	}
	return winner.handle
}

func bestInRange(cat *catalog.Catalog, circuitPool []catalog.CircuitHandle, ss evaluator.SteadyState) dwcCandidate {
	var best dwcCandidate
	for _, ch := range circuitPool {
		circ := cat.Circuit(ch)
		var weight, bw float64
		bw = -1
		for _, r := range circ.Relays() {
			weight += ss.Weights[r]
			avail, ok := ss.AvailableBandwidth[r]
			if !ok {
				avail = float64(cat.Relay(r).Capacity)
			}
			if bw < 0 || avail < bw {
				bw = avail
			}
		}
		cand := dwcCandidate{handle: ch, weight: weight, bw: bw, found: true}
		if !best.found || betterDWC(cat, cand, best) {
			best = cand
		}
	}
	return best
}

// betterDWC reports whether a should replace b as the current winner:
// smaller weight wins; ties broken by larger bw; remaining ties broken by
// lexicographic (guard, middle, exit) relay name, so parallel reduction
// order never affects the outcome.
func betterDWC(cat *catalog.Catalog, a, b dwcCandidate) bool {
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	if a.bw != b.bw {
		return a.bw > b.bw
	}
	return lexLess(cat, a.handle, b.handle)
}

func lexLess(cat *catalog.Catalog, a, b catalog.CircuitHandle) bool {
	ca, cb := cat.Circuit(a), cat.Circuit(b)
	an := [3]string{cat.Relay(ca.Guard).Name, cat.Relay(ca.Middle).Name, cat.Relay(ca.Exit).Name}
	bn := [3]string{cat.Relay(cb.Guard).Name, cat.Relay(cb.Middle).Name, cat.Relay(cb.Exit).Name}
	for i := range an {
		if an[i] != bn[i] {
			return an[i] < bn[i]
		}
	}
	return false
}

// partition splits [0,n) into at most parts contiguous, roughly equal
// ranges, each given as a [start,end) pair.
func partition(n, parts int) [][2]int {
	if parts > n {
		parts = n
	}
	if parts < 1 {
		parts = 1
	}
	chunks := make([][2]int, 0, parts)
	base := n / parts
	rem := n % parts
	start := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < rem {
			size++
		}
		end := start + size
		if end > start {
			chunks = append(chunks, [2]int{start, end})
		}
		start = end
	}
	return chunks
}

package strategy

import (
	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/evaluator"
)

// RunMaxBW places every circuit in the catalog's universe as a distinct,
// co-active download, and reports the single steady-state total: an upper
// bound on any assignment's instantaneous throughput if every candidate
// circuit were used at once (§4.4.4).
func RunMaxBW(cat *catalog.Catalog) (evaluator.SteadyState, error) {
	circuits := cat.Circuits()
	active := make([]catalog.DownloadHandle, len(circuits))
	assignment := make(evaluator.Assignment, len(circuits))

	// MaxBW has no real downloads to assign; it synthesises one nominal
	// download handle per circuit. SolveSteadyState never looks up a
	// Download by handle, only Circuit, so these handles need not
	// correspond to anything registered in the catalog.
	for i := range circuits {
		h := catalog.DownloadHandle(i)
		active[i] = h
		assignment[h] = catalog.CircuitHandle(i)
	}

	return evaluator.SolveSteadyState(cat, active, assignment)
}

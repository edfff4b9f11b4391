package strategy

import (
	"fmt"
	"sort"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/evaluator"
	"github.com/anonproto/circuitsim/pkg/timeline"
)

// Selection names a greedy download ordering policy (§4.4.2).
type Selection string

const (
	SelectionInorder   Selection = "inorder"
	SelectionLongest   Selection = "longest"
	SelectionShortest  Selection = "shortest"
)

// RunGreedy builds an Assignment by visiting downloads in the order named
// by selection, and for each one trying every circuit in its candidate
// pool, keeping whichever maximises integrated throughput over all ticks
// known so far (§4.4.2). Downloads not yet visited are simply absent from
// the timeline the integrator sees; evaluator.Integrate and
// evaluator.SolveSteadyState treat an unassigned active download as absent,
// so "all ticks known so far" naturally means the sub-timeline built from
// the downloads visited up to and including the current one.
func RunGreedy(cat *catalog.Catalog, selection Selection) (evaluator.Assignment, error) {
	order, err := orderedDownloads(cat, selection)
	if err != nil {
		return nil, err
	}

	assignment := make(evaluator.Assignment, len(order))
	var knownHandles []catalog.DownloadHandle

	for _, d := range order {
		dl := cat.Download(d)
		if len(dl.Pool) == 0 {
			return nil, fmt.Errorf("%w: download %d", ErrEmptyCandidatePool, d)
		}
		knownHandles = append(knownHandles, d)
		tl := timeline.BuildFromHandles(cat, knownHandles)

		var bestCircuit catalog.CircuitHandle
		bestScore := -1.0
		for _, c := range dl.Pool {
			assignment[d] = c
			score, err := evaluator.Integrate(cat, tl, assignment)
			if err != nil {
				return nil, err
			}
			if score > bestScore {
				bestScore = score
				bestCircuit = c
			}
		}
		assignment[d] = bestCircuit
	}

	return assignment, nil
}

func orderedDownloads(cat *catalog.Catalog, selection Selection) ([]catalog.DownloadHandle, error) {
	downloads := cat.Downloads()
	order := make([]catalog.DownloadHandle, len(downloads))
	for i := range downloads {
		order[i] = catalog.DownloadHandle(i)
	}

	switch selection {
	case SelectionInorder:
		sort.Slice(order, func(i, j int) bool {
			return downloads[order[i]].End < downloads[order[j]].End
		})
	case SelectionLongest:
		sort.Slice(order, func(i, j int) bool {
			return duration(downloads[order[i]]) > duration(downloads[order[j]])
		})
	case SelectionShortest:
		sort.Slice(order, func(i, j int) bool {
			return duration(downloads[order[i]]) < duration(downloads[order[j]])
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelection, selection)
	}
	return order, nil
}

func duration(d catalog.Download) int64 {
	return d.End - d.Start
}

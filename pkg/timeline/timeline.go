// Package timeline derives the ticks at which the active set of downloads
// changes, and the per-tick index of downloads arriving or departing.
package timeline

import (
	"sort"

	"github.com/anonproto/circuitsim/pkg/catalog"
)

// Timeline is the sorted union of every download's start and end ticks,
// plus a tick->downloads index the evaluator uses to walk arrivals and
// departures in order.
type Timeline struct {
	Ticks []int64
	// Index maps a tick to every download that either starts or ends at
	// it (a download with Start == End appears once, for both events).
	Index map[int64][]catalog.DownloadHandle
}

// Build derives a Timeline from downloads, a slice indexed by
// catalog.DownloadHandle (as catalog.Catalog.Downloads() returns). Use
// BuildFromHandles when the relevant downloads are a subset of the
// catalog's full set and must keep their original handles.
func Build(downloads []catalog.Download) Timeline {
	index := make(map[int64][]catalog.DownloadHandle)
	for i, d := range downloads {
		addEndpoints(index, catalog.DownloadHandle(i), d)
	}
	return fromIndex(index)
}

// BuildFromHandles derives a Timeline over exactly the given downloads,
// looked up by handle in cat, preserving each download's true
// catalog.DownloadHandle in the resulting index regardless of the handles'
// order or contiguity. This is what greedy uses to build a timeline over a
// growing subset of the catalog's downloads.
func BuildFromHandles(cat *catalog.Catalog, handles []catalog.DownloadHandle) Timeline {
	index := make(map[int64][]catalog.DownloadHandle)
	for _, h := range handles {
		addEndpoints(index, h, cat.Download(h))
	}
	return fromIndex(index)
}

func addEndpoints(index map[int64][]catalog.DownloadHandle, h catalog.DownloadHandle, d catalog.Download) {
	index[d.Start] = append(index[d.Start], h)
	if d.End != d.Start {
		index[d.End] = append(index[d.End], h)
	}
}

func fromIndex(index map[int64][]catalog.DownloadHandle) Timeline {
	ticks := make([]int64, 0, len(index))
	for t := range index {
		ticks = append(ticks, t)
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })
	return Timeline{Ticks: ticks, Index: index}
}

// DownloadsAt returns every download that arrives or departs at tick (a
// download whose Start equals its End appears here for both events).
func (t Timeline) DownloadsAt(tick int64) []catalog.DownloadHandle {
	return t.Index[tick]
}

// Package reporter serialises best-known assignments to disk: one file per
// genetic round, and one file per client once a strategy's final
// Assignment is settled (§4.5).
package reporter

import (
	"fmt"
	"os"
	"sort"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/evaluator"
	"github.com/anonproto/circuitsim/pkg/logging"
)

// Reporter writes Assignment snapshots under a fixed output directory and,
// when an Emitter is configured, mirrors each write as a structured
// logging.Event (§4.5 EXPANDED) so a run's progress is observable both as
// files on disk and as log lines.
type Reporter struct {
	outDir  string
	cat     *catalog.Catalog
	emitter *logging.Emitter
}

// New creates outDir (and any missing parents) and returns a Reporter that
// writes snapshots there. emitter may be nil, in which case no events are
// emitted.
func New(outDir string, cat *catalog.Catalog, emitter *logging.Emitter) (*Reporter, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMakeOutputDir, outDir, err)
	}
	return &Reporter{outDir: outDir, cat: cat, emitter: emitter}, nil
}

func (r *Reporter) emit(eventType, summary string, data interface{}) {
	if r.emitter == nil {
		return
	}
	_ = r.emitter.Emit(eventType, summary, nil, data)
}

// circuitFields returns the relay names of c's guard, middle, and exit
// hops, which both the round and the per-client report lines include.
func (r *Reporter) circuitFields(c catalog.Circuit) (guard, middle, exit string) {
	return r.cat.Relay(c.Guard).Name, r.cat.Relay(c.Middle).Name, r.cat.Relay(c.Exit).Name
}

// downloadsByHandle returns every download handle present in assignment,
// in ascending handle order, for deterministic output.
func downloadsByHandle(assignment evaluator.Assignment) []catalog.DownloadHandle {
	handles := make([]catalog.DownloadHandle, 0, len(assignment))
	for d := range assignment {
		handles = append(handles, d)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}

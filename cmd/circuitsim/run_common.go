package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/ingest"
	"github.com/anonproto/circuitsim/pkg/logging"
	"github.com/anonproto/circuitsim/pkg/reporter"
	"github.com/anonproto/circuitsim/pkg/simlog"
)

// runContext bundles everything a strategy subcommand needs once the
// input files have been parsed and the catalog built: the catalog itself,
// a leveled human logger, a structured event emitter, and a Reporter
// wired to both.
type runContext struct {
	cat      *catalog.Catalog
	logger   *simlog.Logger
	emitter  *logging.Emitter
	reporter *reporter.Reporter
	runID    string
}

// setupRun parses the downloads/relays/circuits files, builds a candidate
// circuit universe (either from the explicit circuits file, the
// capacity-greedy pruned builder, or the full O(n^3) builder), and wires
// logging and the Reporter. strategyName is stamped on every emitted
// logging.Event (§6 EXPANDED Run identity).
func setupRun(cmd *cobra.Command, downloadsFile, relaysFile, strategyName string) (*runContext, error) {
	circuitsFile, _ := cmd.Flags().GetString("circuits")
	pruned, _ := cmd.Flags().GetBool("pruned")
	output, _ := cmd.Flags().GetString("output")
	logLevel, _ := cmd.Flags().GetString("log")

	if circuitsFile != "" && pruned {
		return nil, ErrCircuitsAndPruned
	}

	base := logrus.New()
	base.SetOutput(progressOutput(cmd))
	logger := simlog.New(base, simlog.ParseLevel(logLevel))

	result, err := ingest.ParseAll(context.Background(), downloadsFile, relaysFile, circuitsFile)
	if err != nil {
		return nil, fmt.Errorf("parsing input files: %w", err)
	}

	cat := catalog.New()
	warnings := ingest.Populate(cat, result)
	for _, w := range warnings {
		logger.Warningf("%s", w.String())
	}

	if len(result.Circuits) == 0 {
		if pruned {
			cat.BuildPrunedUniverse()
		} else {
			cat.BuildFullUniverse()
		}
	}

	buildWarnings, err := cat.Build()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	for _, w := range buildWarnings {
		logger.Warningf("%s", w)
	}

	runID := uuid.New().String()

	if err := os.MkdirAll(output, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	eventLog, err := logging.NewJSONLWriter(filepath.Join(output, "events.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	emitter := logging.NewEmitter(logging.EmitterConfig{RunID: runID, Strategy: strategyName}, eventLog)

	rep, err := reporter.New(output, cat, emitter)
	if err != nil {
		return nil, fmt.Errorf("setting up reporter: %w", err)
	}

	logger.Messagef("run %s: %d relays, %d downloads, %d circuits", runID, len(cat.Relays()), cat.NumDownloads(), len(cat.Circuits()))

	return &runContext{cat: cat, logger: logger, emitter: emitter, reporter: rep, runID: runID}, nil
}

// progressOutput selects where a human logger writes: stderr either way,
// but x/term.IsTerminal gates whether the caller later renders per-round
// progress as a carriage-return-updated line or one line per round (§4.7
// EXPANDED).
func progressOutput(cmd *cobra.Command) *os.File {
	_ = cmd
	return os.Stderr
}

// isInteractive reports whether stderr is an interactive terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func requirePositional(args []string, names ...string) error {
	if len(args) < len(names) {
		return fmt.Errorf("%w: need %v, got %v", ErrMissingPositionalArgs, names, args)
	}
	return nil
}

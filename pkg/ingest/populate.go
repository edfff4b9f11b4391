package ingest

import (
	"github.com/anonproto/circuitsim/pkg/catalog"
)

// Populate registers every parsed relay, download, and explicit circuit
// into cat, in that order (relays first, since circuits and scoped
// circuits resolve relay names against the catalog). A circuit or scoped
// circuit naming an unknown relay produces a Warning and is skipped
// (§7: catalog-inconsistency degrades gracefully). Populate does not call
// cat.Build or either universe builder — the caller decides that
// separately (explicit circuits file vs. --pruned vs. full universe).
func Populate(cat *catalog.Catalog, result *Result) []Warning {
	warnings := append([]Warning(nil), result.Warnings...)

	for _, r := range result.Relays {
		cat.AddRelay(r.Name, r.Capacity)
	}

	for _, d := range result.Downloads {
		if _, err := cat.AddDownload(d.Client, d.Start, d.End); err != nil {
			warnings = append(warnings, warn("downloads", 0, "%s: %v", d.Client, err))
		}
	}

	for _, c := range result.Circuits {
		guard, ok := cat.RelayByName(c.Guard)
		if !ok {
			warnings = append(warnings, warn("circuits", 0, "unknown guard relay %q", c.Guard))
			continue
		}
		middle, ok := cat.RelayByName(c.Middle)
		if !ok {
			warnings = append(warnings, warn("circuits", 0, "unknown middle relay %q", c.Middle))
			continue
		}
		exit, ok := cat.RelayByName(c.Exit)
		if !ok {
			warnings = append(warnings, warn("circuits", 0, "unknown exit relay %q", c.Exit))
			continue
		}
		if c.Client == "" {
			cat.AddCircuit(guard, middle, exit)
			continue
		}
		cat.AddScopedCircuit(guard, middle, exit, c.Client, c.Start, c.End)
	}

	return warnings
}

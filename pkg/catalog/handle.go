// Package catalog owns the relay, download, and circuit collections the
// rest of the simulator operates on, and builds the candidate-circuit
// universes strategies search over.
package catalog

// RelayHandle, DownloadHandle, and CircuitHandle are stable integer handles
// assigned at catalog construction time. The reference implementation keys
// assignment maps by pointer identity; we use dense integer handles instead
// so maps stay comparable, hashable, and safe to share read-only across
// worker-pool goroutines.
type RelayHandle int

type DownloadHandle int

type CircuitHandle int

// invalidHandle is a "no relay"/"no circuit" sentinel value. Nothing in the
// module reads it: evaluator.DownloadResult marks a missing bottleneck with
// its HasBottleneck flag instead.
const invalidHandle = -1

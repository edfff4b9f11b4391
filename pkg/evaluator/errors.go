package evaluator

import "errors"

// Evaluator-invariant errors indicate a bug in the solver, not a problem
// with user-supplied data (§7: these abort the current solve rather than
// degrading gracefully).
var (
	ErrNoBottleneck       = errors.New("evaluator: no bottleneck relay found while active relays remain")
	ErrResidualAfterDrain = errors.New("evaluator: bottleneck relay retains residual or downloads after draining")
)

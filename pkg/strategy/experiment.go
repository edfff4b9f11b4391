package strategy

import "github.com/anonproto/circuitsim/pkg/evaluator"

// Experiment is a full Assignment paired with its integrated fitness, the
// unit the genetic strategy selects, breeds, and mutates.
type Experiment struct {
	Assignment evaluator.Assignment
	Fitness    float64
}

// Clone returns an Experiment with an independently mutable Assignment.
func (e Experiment) Clone() Experiment {
	return Experiment{Assignment: e.Assignment.Clone(), Fitness: e.Fitness}
}

package strategy

import "errors"

var (
	ErrEmptyCandidatePool = errors.New("strategy: download has an empty candidate pool")
	ErrUnknownSelection   = errors.New("strategy: unknown greedy selection policy")
	ErrNoStopCondition    = errors.New("strategy: genetic run requires at least one stop condition")
)

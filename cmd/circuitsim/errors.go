package main

import "errors"

var (
	ErrMissingPositionalArgs = errors.New("missing required positional arguments")
	ErrCircuitsAndPruned     = errors.New("--circuits and --pruned are mutually exclusive")
)

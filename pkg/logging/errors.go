package logging

import (
	"errors"
	"fmt"
)

var (
	ErrOpenEventLog    = errors.New("eventlog: open event log")
	ErrEncodeEvent     = errors.New("eventlog: encode event")
	ErrEncodeEventData = errors.New("eventlog: encode event data")
	ErrCloseEventLog   = errors.New("eventlog: close event log")
)

// wrap joins sentinel and cause so callers can errors.Is against sentinel
// while still seeing cause's text.
func wrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

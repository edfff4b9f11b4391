package logging

import (
	"encoding/json"
	"time"
)

// Event is one line of a run's event log: the metadata an Emitter stamps
// on every call (Timestamp, RunID, Strategy) plus the type, summary, and
// optional tags/data the caller supplies.
type Event struct {
	Timestamp time.Time       `json:"ts"`
	RunID     string          `json:"run_id"`
	Strategy  string          `json:"strategy"`
	EventType string          `json:"event_type"`
	Summary   string          `json:"summary"`
	Tags      []string        `json:"tags,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Event type constants.
const (
	EventRunStarted        = "run_started"
	EventRunCompleted      = "run_completed"
	EventRoundReported     = "round_reported"
	EventClientReported    = "client_reported"
	EventParseWarning      = "parse_warning"
	EventInvariantViolated = "invariant_violated"
)

// RoundReportedData is the data payload for round_reported events.
type RoundReportedData struct {
	Round     int     `json:"round"`
	Fitness   float64 `json:"fitness"`
	BestSoFar float64 `json:"best_so_far"`
}

// ClientReportedData is the data payload for client_reported events.
type ClientReportedData struct {
	Client     string  `json:"client"`
	Downloads  int     `json:"downloads"`
	TotalBytes float64 `json:"total_bytes"`
}

// ParseWarningData is the data payload for parse_warning events.
type ParseWarningData struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// InvariantViolatedData is the data payload for invariant_violated events.
type InvariantViolatedData struct {
	Invariant string `json:"invariant"`
	Detail    string `json:"detail"`
}

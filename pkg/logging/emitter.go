package logging

import (
	"encoding/json"
	"time"
)

// EmitterConfig holds the static metadata stamped onto every event a run
// produces.
type EmitterConfig struct {
	RunID    string // caller-supplied; should be a fresh uuid per invocation
	Strategy string // "genetic", "greedy", "dwc", or "maxbw"
}

// Emitter stamps static run metadata onto events and forwards them to a
// single Sink. With zero sinks it discards events; with more than one,
// NewEmitter composes them with a FanOutSink so Emit and Close never need
// to know how many underlying sinks exist.
//
// A nil *Emitter is safe to hold; callers guard emission with:
//
//	if emitter != nil {
//	    _ = emitter.Emit(...)
//	}
type Emitter struct {
	config EmitterConfig
	sink   Sink
}

// NewEmitter creates an emitter with the given configuration and sinks.
func NewEmitter(cfg EmitterConfig, sinks ...Sink) *Emitter {
	var sink Sink
	switch len(sinks) {
	case 0:
		sink = nopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = NewFanOutSink(sinks...)
	}
	return &Emitter{config: cfg, sink: sink}
}

// Emit constructs an event with the emitter's static metadata and writes
// it to the emitter's sink.
//
// Parameters:
//   - eventType: one of the Event* constants (e.g., EventRoundReported)
//   - summary: human-readable one-line summary
//   - tags: optional tags for filtering (nil is fine)
//   - data: the typed data struct (e.g., *RoundReportedData); nil for no payload
//
// Callers treat emission as best-effort and typically discard the error
// with _ =, since a stalled event log should never abort a run.
func (e *Emitter) Emit(eventType, summary string, tags []string, data interface{}) error {
	var rawData json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return wrap(ErrEncodeEventData, err)
		}
		rawData = b
	}

	event := &Event{
		Timestamp: time.Now().UTC(),
		RunID:     e.config.RunID,
		Strategy:  e.config.Strategy,
		EventType: eventType,
		Summary:   summary,
		Tags:      tags,
		Data:      rawData,
	}

	return e.sink.Write(event)
}

// Close closes the emitter's sink.
func (e *Emitter) Close() error {
	return e.sink.Close()
}

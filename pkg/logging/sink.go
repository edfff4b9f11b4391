package logging

import "sync"

// Sink consumes structured events. Implementations must be safe for
// concurrent use: one Emitter, and so one sink, may be shared by several
// goroutines that emit at once.
type Sink interface {
	// Write persists or forwards a single event.
	// Implementations should not modify the event.
	Write(event *Event) error

	// Close flushes any buffered data and releases resources.
	Close() error
}

// FanOutSink writes every event to each wrapped sink in order, stopping at
// the first error, and closes every wrapped sink on Close, collecting the
// first error. It serializes access across the whole set, so an Emitter
// built over a FanOutSink needs no locking of its own regardless of how
// many underlying sinks it composes.
type FanOutSink struct {
	mu    sync.Mutex
	sinks []Sink
}

// NewFanOutSink composes sinks into a single Sink.
func NewFanOutSink(sinks ...Sink) *FanOutSink {
	return &FanOutSink{sinks: sinks}
}

func (f *FanOutSink) Write(event *Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sinks {
		if err := s.Write(event); err != nil {
			return err
		}
	}
	return nil
}

func (f *FanOutSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var firstErr error
	for _, s := range f.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// nopSink discards every event. It backs an Emitter built with no sinks,
// so Emit never needs a nil check on its write path.
type nopSink struct{}

func (nopSink) Write(*Event) error { return nil }
func (nopSink) Close() error       { return nil }

package logging

import (
	"encoding/json"
	"os"
	"sync"
)

// JSONLWriter writes structured events as JSON-L to a file.
// It implements Sink and is safe for concurrent use.
type JSONLWriter struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewJSONLWriter opens path for appending, creating the file if needed.
// The parent directory must already exist; callers are responsible for
// creating it (a run's output directory is made before the event log is
// opened). Opening in append mode means a re-run against the same path
// never truncates a previous run's events.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, wrap(ErrOpenEventLog, err)
	}
	return &JSONLWriter{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Write appends event as one JSON line, holding the lock for the full
// encode so concurrent writers from different worker-pool goroutines
// never interleave partial lines.
func (w *JSONLWriter) Write(event *Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(event); err != nil {
		return wrap(ErrEncodeEvent, err)
	}
	return nil
}

// Close flushes pending writes to disk and closes the file.
func (w *JSONLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.file.Sync()
	if err := w.file.Close(); err != nil {
		return wrap(ErrCloseEventLog, err)
	}
	return nil
}

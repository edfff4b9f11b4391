package catalog

import "errors"

var (
	// ErrNoExitInTriple names the case of a candidate 3-subset of relays
	// with no exit-named relay. The universe builders discard such subsets
	// without returning an error.
	ErrNoExitInTriple = errors.New("catalog: no exit relay in triple")
	// ErrUnknownRelay names the case of a circuit referencing a relay name
	// that was never added to the catalog. No catalog method returns it;
	// ingest.Populate reports such circuits as warnings instead.
	ErrUnknownRelay = errors.New("catalog: unknown relay")
	// ErrInvalidDownload is returned when start_time > end_time.
	ErrInvalidDownload = errors.New("catalog: start_time after end_time")
	// ErrEmptyCatalog is returned when Build is called with no circuits
	// at all, so no download can ever receive a fallback pool.
	ErrEmptyCatalog = errors.New("catalog: no circuits available")
)

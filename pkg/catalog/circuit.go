package catalog

// Circuit is an ordered triple (guard, middle, exit) of relays plus its
// precomputed bandwidth. A circuit may optionally be scoped to a single
// client and a time window, in which case it is only eligible for that
// client's downloads whose interval lies within the window.
type Circuit struct {
	Guard, Middle, Exit RelayHandle
	Bandwidth           int64

	// Scope, when Client != "", restricts eligibility (see isEligibleFor).
	Client      string
	WindowStart int64 // ms tick; 0 means open on this side
	WindowEnd   int64 // ms tick; 0 means open on this side
}

// scoped reports whether this circuit carries a client/time restriction.
func (c Circuit) scoped() bool {
	return c.Client != ""
}

// isEligibleFor reports whether c may be used by a download of the given
// client with the given [start,end] interval. Unscoped circuits are
// eligible for everyone; scoped circuits require a matching client and a
// window that covers the download's interval (a zero endpoint is open on
// that side).
func (c Circuit) isEligibleFor(client string, start, end int64) bool {
	if !c.scoped() {
		return true
	}
	if c.Client != client {
		return false
	}
	if c.WindowStart != 0 && start < c.WindowStart {
		return false
	}
	if c.WindowEnd != 0 && end > c.WindowEnd {
		return false
	}
	return true
}

// touches reports whether r is one of the circuit's three relays.
func (c Circuit) touches(r RelayHandle) bool {
	return c.Guard == r || c.Middle == r || c.Exit == r
}

// Relays returns the circuit's three hops in guard, middle, exit order.
func (c Circuit) Relays() [3]RelayHandle {
	return [3]RelayHandle{c.Guard, c.Middle, c.Exit}
}

// min3 returns the smallest of three int64 values.
func min3(a, b, c int64) int64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

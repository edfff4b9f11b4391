package catalog

import (
	"fmt"
	"sort"
)

// Catalog owns the relay, download, and circuit collections for a single
// simulation run. Catalog entities live for the process duration (see
// design note on lifecycles); Catalog itself is not safe for concurrent
// mutation, but once Build has returned, its read-only views (Relays,
// Downloads, Circuits, and every Download's Pool/WeightedPool) may be
// shared freely across goroutines.
type Catalog struct {
	relays     []Relay
	relayIndex map[string]RelayHandle
	downloads  []Download
	circuits   []Circuit
	built      bool
}

// New returns an empty Catalog ready for relays, downloads, and circuits
// to be added.
func New() *Catalog {
	return &Catalog{relayIndex: make(map[string]RelayHandle)}
}

// AddRelay registers a relay by name, returning its handle. Re-adding the
// same name returns the existing handle rather than creating a duplicate.
func (c *Catalog) AddRelay(name string, capacity int64) RelayHandle {
	if h, ok := c.relayIndex[name]; ok {
		return h
	}
	h := RelayHandle(len(c.relays))
	c.relays = append(c.relays, Relay{Name: name, Capacity: capacity})
	c.relayIndex[name] = h
	return h
}

// RelayByName looks up a previously added relay by name.
func (c *Catalog) RelayByName(name string) (RelayHandle, bool) {
	h, ok := c.relayIndex[name]
	return h, ok
}

// Relay returns the relay identified by h.
func (c *Catalog) Relay(h RelayHandle) Relay { return c.relays[h] }

// Relays returns every registered relay, indexed by RelayHandle.
func (c *Catalog) Relays() []Relay { return c.relays }

// AddDownload registers a download, returning its handle. start and end
// are ticks on the millisecond axis; start must not exceed end.
func (c *Catalog) AddDownload(client string, start, end int64) (DownloadHandle, error) {
	if start > end {
		return 0, fmt.Errorf("%w: client=%s start=%d end=%d", ErrInvalidDownload, client, start, end)
	}
	h := DownloadHandle(len(c.downloads))
	c.downloads = append(c.downloads, Download{Client: client, Start: start, End: end})
	return h, nil
}

// Download returns the download identified by h. Pool and WeightedPool
// are only populated once Build has run.
func (c *Catalog) Download(h DownloadHandle) Download { return c.downloads[h] }

// Downloads returns every registered download, indexed by DownloadHandle.
func (c *Catalog) Downloads() []Download { return c.downloads }

// NumDownloads returns the number of registered downloads.
func (c *Catalog) NumDownloads() int { return len(c.downloads) }

// Circuit returns the circuit identified by h.
func (c *Catalog) Circuit(h CircuitHandle) Circuit { return c.circuits[h] }

// Circuits returns every registered circuit, indexed by CircuitHandle.
func (c *Catalog) Circuits() []Circuit { return c.circuits }

func (c *Catalog) addCircuit(guard, middle, exit RelayHandle, bw int64, client string, windowStart, windowEnd int64) CircuitHandle {
	h := CircuitHandle(len(c.circuits))
	c.circuits = append(c.circuits, Circuit{
		Guard: guard, Middle: middle, Exit: exit,
		Bandwidth:   bw,
		Client:      client,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	})
	return h
}

// AddCircuit registers an explicit, unscoped circuit given guard, middle,
// and exit in that fixed order (as read from the circuits file, §6). The
// caller-supplied order is trusted as-is; no exit-slot rotation is applied
// here, unlike the universe builders below, since the input already names
// each relay's role.
func (c *Catalog) AddCircuit(guard, middle, exit RelayHandle) CircuitHandle {
	bw := min3(c.relays[guard].Capacity, c.relays[middle].Capacity, c.relays[exit].Capacity)
	return c.addCircuit(guard, middle, exit, bw, "", 0, 0)
}

// AddScopedCircuit registers a circuit restricted to a single client and
// time window (zero endpoints are open on that side).
func (c *Catalog) AddScopedCircuit(guard, middle, exit RelayHandle, client string, windowStart, windowEnd int64) CircuitHandle {
	bw := min3(c.relays[guard].Capacity, c.relays[middle].Capacity, c.relays[exit].Capacity)
	return c.addCircuit(guard, middle, exit, bw, client, windowStart, windowEnd)
}

// rotateExit finds an exit-named relay among three candidates and places
// it in the exit slot, preferring the last (highest-index) match when more
// than one candidate qualifies — matching natural ascending iteration
// order. The other two keep their relative order as guard, then middle.
// ok is false if none of the three is exit-named.
func (c *Catalog) rotateExit(candidates [3]RelayHandle) (guard, middle, exit RelayHandle, ok bool) {
	exitPos := -1
	for i, h := range candidates {
		if c.relays[h].IsExit() {
			exitPos = i
		}
	}
	if exitPos == -1 {
		return 0, 0, 0, false
	}
	others := make([]RelayHandle, 0, 2)
	for i, h := range candidates {
		if i != exitPos {
			others = append(others, h)
		}
	}
	return others[0], others[1], candidates[exitPos], true
}

// BuildFullUniverse enumerates every unordered 3-subset of the catalog's
// relays, rotates an exit-named member into the exit slot, and discards
// subsets with no exit. Result size is O(n^3) with the exit filter. It
// returns the number of circuits added.
func (c *Catalog) BuildFullUniverse() int {
	n := len(c.relays)
	added := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				guard, middle, exit, ok := c.rotateExit([3]RelayHandle{RelayHandle(i), RelayHandle(j), RelayHandle(k)})
				if !ok {
					continue
				}
				bw := min3(c.relays[guard].Capacity, c.relays[middle].Capacity, c.relays[exit].Capacity)
				c.addCircuit(guard, middle, exit, bw, "", 0, 0)
				added++
			}
		}
	}
	return added
}

// BuildPrunedUniverse performs capacity-greedy bundling: repeatedly take
// the two highest-residual-capacity relays, find a third (preferring an
// exit if neither of the top two is one), form a circuit whose bandwidth
// is the minimum of the three residuals, and remove all three from
// further consideration. This produces an approximately capacity-balanced
// bag of circuits without the full builder's O(n^3) enumeration (each of
// the at most n/3 rounds re-sorts the remaining relays). It returns the
// number of circuits added.
func (c *Catalog) BuildPrunedUniverse() int {
	type node struct {
		handle   RelayHandle
		residual int64
	}
	nodes := make([]node, len(c.relays))
	for i, r := range c.relays {
		nodes[i] = node{handle: RelayHandle(i), residual: r.Capacity}
	}

	added := 0
	for len(nodes) >= 3 {
		sort.SliceStable(nodes, func(a, b int) bool { return nodes[a].residual > nodes[b].residual })
		first, second := nodes[0], nodes[1]
		rest := nodes[2:]

		var third node
		if !c.relays[first.handle].IsExit() && !c.relays[second.handle].IsExit() {
			pos := -1
			for i, nd := range rest {
				if c.relays[nd.handle].IsExit() {
					pos = i
					break
				}
			}
			if pos == -1 {
				break // no exit available anywhere in the remaining relays
			}
			third = rest[pos]
			rest = append(append([]node{}, rest[:pos]...), rest[pos+1:]...)
		} else {
			if len(rest) == 0 {
				break
			}
			third = rest[0]
			rest = rest[1:]
		}

		guard, middle, exit, ok := c.rotateExit([3]RelayHandle{first.handle, second.handle, third.handle})
		if !ok {
			break
		}
		bw := min3(first.residual, second.residual, third.residual)
		c.addCircuit(guard, middle, exit, bw, "", 0, 0)
		added++

		nodes = rest
	}
	return added
}

// Build finalises each download's candidate pool and bandwidth-weighted
// pool from the circuits registered so far. A download that has one or
// more scoped circuits matching its client and covering its interval gets
// exactly those circuits as its pool, exclusive of every unscoped one —
// scoping a circuit to a client carves that client's downloads out of the
// unscoped pool rather than adding to it. Only a download with zero
// scoped matches falls back to the unscoped circuits; only a download
// with neither scoped matches nor any unscoped circuit at all falls back
// further, to the entire catalog-wide circuit set (the "global pool",
// every circuit including ones scoped to other clients), with a warning
// rather than failing the run (§7: catalog-inconsistency degrades
// gracefully). Build must be called exactly once, after all relays,
// downloads, and circuits are registered.
func (c *Catalog) Build() ([]string, error) {
	if len(c.circuits) == 0 {
		return nil, ErrEmptyCatalog
	}

	var unscoped []CircuitHandle
	for h, circ := range c.circuits {
		if !circ.scoped() {
			unscoped = append(unscoped, CircuitHandle(h))
		}
	}

	global := make([]CircuitHandle, len(c.circuits))
	for i := range c.circuits {
		global[i] = CircuitHandle(i)
	}

	var warnings []string
	for i := range c.downloads {
		d := &c.downloads[i]

		var scoped []CircuitHandle
		for h, circ := range c.circuits {
			if circ.scoped() && circ.isEligibleFor(d.Client, d.Start, d.End) {
				scoped = append(scoped, CircuitHandle(h))
			}
		}

		var pool []CircuitHandle
		switch {
		case len(scoped) > 0:
			pool = scoped
		case len(unscoped) > 0:
			pool = unscoped
		default:
			warnings = append(warnings, fmt.Sprintf(
				"download %d (client %q, [%d,%d]): empty candidate pool, falling back to global pool",
				i, d.Client, d.Start, d.End))
			pool = global
		}

		d.Pool = pool
		d.WeightedPool = c.weightedPool(pool)
	}
	c.built = true
	return warnings, nil
}

// Built reports whether Build has completed successfully.
func (c *Catalog) Built() bool { return c.built }

func (c *Catalog) weightedPool(pool []CircuitHandle) []CircuitHandle {
	out := make([]CircuitHandle, 0, len(pool))
	for _, h := range pool {
		n := ceilDiv1024(c.circuits[h].Bandwidth)
		for i := 0; i < n; i++ {
			out = append(out, h)
		}
	}
	return out
}

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/timeline"
)

func buildCatalog(t *testing.T, relayCaps map[string]int64) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	for name, cap := range relayCaps {
		cat.AddRelay(name, cap)
	}
	return cat
}

// TestScenarioA_SingleBottleneck: relays g=1000, m=1000, x-exit=100; one
// download 0->10s over a single circuit. Expected bandwidth=100, bottleneck
// x-exit, integrated total = 100*10 = 1000.
func TestScenarioA_SingleBottleneck(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{"g": 1000, "m": 1000, "x-exit": 100})
	g, _ := cat.RelayByName("g")
	m, _ := cat.RelayByName("m")
	x, _ := cat.RelayByName("x-exit")

	dl, err := cat.AddDownload("alice", 0, 10000)
	require.NoError(t, err)

	circ := cat.AddCircuit(g, m, x)
	_, err = cat.Build()
	require.NoError(t, err)

	assignment := Assignment{dl: circ}
	tl := timeline.Build(cat.Downloads())

	ss, err := SolveSteadyState(cat, []catalog.DownloadHandle{dl}, assignment)
	require.NoError(t, err)
	require.True(t, ss.Results[dl].HasBottleneck)
	assert.Equal(t, 100.0, ss.Results[dl].Bandwidth)
	assert.Equal(t, x, ss.Results[dl].Bottleneck)

	total, err := Integrate(cat, tl, assignment)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, total, 1e-6)
}

// TestScenarioB_FairSplit: two downloads 0->10s sharing the g=1000,m=1000,
// x-exit=100 circuit. Each gets 50; total = 1000.
func TestScenarioB_FairSplit(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{"g": 1000, "m": 1000, "x-exit": 100})
	g, _ := cat.RelayByName("g")
	m, _ := cat.RelayByName("m")
	x, _ := cat.RelayByName("x-exit")

	d0, err := cat.AddDownload("alice", 0, 10000)
	require.NoError(t, err)
	d1, err := cat.AddDownload("bob", 0, 10000)
	require.NoError(t, err)

	circ := cat.AddCircuit(g, m, x)
	_, err = cat.Build()
	require.NoError(t, err)

	assignment := Assignment{d0: circ, d1: circ}
	tl := timeline.Build(cat.Downloads())

	ss, err := SolveSteadyState(cat, []catalog.DownloadHandle{d0, d1}, assignment)
	require.NoError(t, err)
	assert.Equal(t, 50.0, ss.Results[d0].Bandwidth)
	assert.Equal(t, 50.0, ss.Results[d1].Bandwidth)
	assert.Equal(t, x, ss.Results[d0].Bottleneck)
	assert.Equal(t, x, ss.Results[d1].Bottleneck)

	total, err := Integrate(cat, tl, assignment)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, total, 1e-6)
}

// TestScenarioC_DisjointBottlenecks: two downloads over two circuits with no
// shared relay; each gets its own min(cap); total = sum.
func TestScenarioC_DisjointBottlenecks(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{
		"g0": 1000, "m0": 1000, "x0-exit": 200,
		"g1": 1000, "m1": 1000, "x1-exit": 300,
	})
	g0, _ := cat.RelayByName("g0")
	m0, _ := cat.RelayByName("m0")
	x0, _ := cat.RelayByName("x0-exit")
	g1, _ := cat.RelayByName("g1")
	m1, _ := cat.RelayByName("m1")
	x1, _ := cat.RelayByName("x1-exit")

	d0, err := cat.AddDownload("alice", 0, 10000)
	require.NoError(t, err)
	d1, err := cat.AddDownload("bob", 0, 10000)
	require.NoError(t, err)

	c0 := cat.AddCircuit(g0, m0, x0)
	c1 := cat.AddCircuit(g1, m1, x1)
	_, err = cat.Build()
	require.NoError(t, err)

	assignment := Assignment{d0: c0, d1: c1}
	tl := timeline.Build(cat.Downloads())

	ss, err := SolveSteadyState(cat, []catalog.DownloadHandle{d0, d1}, assignment)
	require.NoError(t, err)
	assert.Equal(t, 200.0, ss.Results[d0].Bandwidth)
	assert.Equal(t, 300.0, ss.Results[d1].Bandwidth)

	total, err := Integrate(cat, tl, assignment)
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, total, 1e-6) // 200*10 + 300*10
}

// TestScenarioD_StaggeredIntervals: downloads [0,5] and [3,8] sharing a
// single 100-capacity exit circuit. Over [0,3] the first gets 100, over
// [3,5] each gets 50, over [5,8] the second gets 100. Integrated bytes =
// 100*3 + 100*2 + 100*3 = 800.
func TestScenarioD_StaggeredIntervals(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{"g": 1000, "m": 1000, "x-exit": 100})
	g, _ := cat.RelayByName("g")
	m, _ := cat.RelayByName("m")
	x, _ := cat.RelayByName("x-exit")

	d0, err := cat.AddDownload("alice", 0, 5000)
	require.NoError(t, err)
	d1, err := cat.AddDownload("bob", 3000, 8000)
	require.NoError(t, err)

	circ := cat.AddCircuit(g, m, x)
	_, err = cat.Build()
	require.NoError(t, err)

	assignment := Assignment{d0: circ, d1: circ}
	tl := timeline.Build(cat.Downloads())

	total, err := Integrate(cat, tl, assignment)
	require.NoError(t, err)
	assert.InDelta(t, 800.0, total, 1e-6)
}

// TestInvariant1_CapacityConservation checks that the load on the shared
// exit relay, the bottleneck of all three downloads, does not exceed its
// capacity (within epsilon) after a solve.
func TestInvariant1_CapacityConservation(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{"g": 500, "m": 700, "x-exit": 300})
	g, _ := cat.RelayByName("g")
	m, _ := cat.RelayByName("m")
	x, _ := cat.RelayByName("x-exit")

	var handles []catalog.DownloadHandle
	assignment := Assignment{}
	circ := cat.AddCircuit(g, m, x)
	_, err := cat.Build()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		d, err := cat.AddDownload("c", 0, 1000)
		require.NoError(t, err)
		handles = append(handles, d)
		assignment[d] = circ
	}

	ss, err := SolveSteadyState(cat, handles, assignment)
	require.NoError(t, err)

	loadByRelay := map[catalog.RelayHandle]float64{}
	for _, d := range handles {
		loadByRelay[x] += ss.Results[d].Bandwidth
	}
	assert.LessOrEqual(t, loadByRelay[x], float64(cat.Relay(x).Capacity)+1e-6)
}

// TestInvariant3_BottleneckIdentity checks bandwidth = capacity(bottleneck)/load(bottleneck).
func TestInvariant3_BottleneckIdentity(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{"g": 1000, "m": 1000, "x-exit": 90})
	g, _ := cat.RelayByName("g")
	m, _ := cat.RelayByName("m")
	x, _ := cat.RelayByName("x-exit")
	circ := cat.AddCircuit(g, m, x)
	_, err := cat.Build()
	require.NoError(t, err)

	assignment := Assignment{}
	var handles []catalog.DownloadHandle
	for i := 0; i < 3; i++ {
		d, err := cat.AddDownload("c", 0, 1000)
		require.NoError(t, err)
		handles = append(handles, d)
		assignment[d] = circ
	}

	ss, err := SolveSteadyState(cat, handles, assignment)
	require.NoError(t, err)
	for _, d := range handles {
		res := ss.Results[d]
		require.True(t, res.HasBottleneck)
		expected := float64(cat.Relay(res.Bottleneck).Capacity) / float64(len(handles))
		assert.InDelta(t, expected, res.Bandwidth, 1e-6)
	}
}

// TestInvariant4_IntegrationMonotonicity: adding a concurrent download can
// only decrease the throughput of downloads it overlaps with.
func TestInvariant4_IntegrationMonotonicity(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{"g": 1000, "m": 1000, "x-exit": 100})
	g, _ := cat.RelayByName("g")
	m, _ := cat.RelayByName("m")
	x, _ := cat.RelayByName("x-exit")
	circ := cat.AddCircuit(g, m, x)
	_, err := cat.Build()
	require.NoError(t, err)

	d0, err := cat.AddDownload("alice", 0, 10000)
	require.NoError(t, err)

	solo, err := SolveSteadyState(cat, []catalog.DownloadHandle{d0}, Assignment{d0: circ})
	require.NoError(t, err)

	d1, err := cat.AddDownload("bob", 0, 10000)
	require.NoError(t, err)

	shared, err := SolveSteadyState(cat, []catalog.DownloadHandle{d0, d1}, Assignment{d0: circ, d1: circ})
	require.NoError(t, err)

	assert.LessOrEqual(t, shared.Results[d0].Bandwidth, solo.Results[d0].Bandwidth)
}

func TestSolveSteadyState_EmptyActiveSetYieldsZero(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{"g": 100, "m": 100, "x-exit": 100})
	ss, err := SolveSteadyState(cat, nil, Assignment{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, ss.Total)
	assert.Empty(t, ss.Results)
}

func TestSolveSteadyState_UnassignedActiveDownloadIsIgnored(t *testing.T) {
	cat := buildCatalog(t, map[string]int64{"g": 1000, "m": 1000, "x-exit": 100})
	g, _ := cat.RelayByName("g")
	m, _ := cat.RelayByName("m")
	x, _ := cat.RelayByName("x-exit")
	circ := cat.AddCircuit(g, m, x)
	_, err := cat.Build()
	require.NoError(t, err)

	d0, err := cat.AddDownload("alice", 0, 10000)
	require.NoError(t, err)
	d1, err := cat.AddDownload("bob", 0, 10000)
	require.NoError(t, err)

	assignment := Assignment{d0: circ} // d1 deliberately left unassigned
	ss, err := SolveSteadyState(cat, []catalog.DownloadHandle{d0, d1}, assignment)
	require.NoError(t, err)
	_, ok := ss.Results[d1]
	assert.False(t, ok)
	assert.Equal(t, 100.0, ss.Results[d0].Bandwidth)
}

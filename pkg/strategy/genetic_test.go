package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonproto/circuitsim/pkg/catalog"
)

func buildGeneticCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	cat.AddRelay("g0", 1000)
	cat.AddRelay("m0", 1000)
	cat.AddRelay("x0-exit", 200)
	cat.AddRelay("g1", 1000)
	cat.AddRelay("m1", 1000)
	cat.AddRelay("x1-exit", 80)

	for i := 0; i < 6; i++ {
		_, err := cat.AddDownload("client", 0, 10000)
		require.NoError(t, err)
	}

	cat.BuildFullUniverse()
	_, err := cat.Build()
	require.NoError(t, err)
	return cat
}

// TestInvariant7_GeneticElitism checks that the best fitness reported
// across generations never decreases.
func TestInvariant7_GeneticElitism(t *testing.T) {
	cat := buildGeneticCatalog(t)
	tl := buildTimeline(cat)

	params := GeneticParams{
		Population:      20,
		BreedPercentile: 0.5,
		ElitePercentile: 0.1,
		MutationRate:    0.2,
		Threads:         4,
	}
	stop := StopCondition{MaxRounds: 10}

	var history []float64
	_, err := RunGenetic(cat, tl, params, stop, func(round int, best Experiment) {
		history = append(history, best.Fitness)
	})
	require.NoError(t, err)
	require.Len(t, history, 10)

	for i := 1; i < len(history); i++ {
		assert.GreaterOrEqual(t, history[i], history[i-1], "best fitness must never decrease across rounds")
	}
}

func TestRunGenetic_RequiresStopCondition(t *testing.T) {
	cat := buildGeneticCatalog(t)
	tl := buildTimeline(cat)
	params := GeneticParams{Population: 4, BreedPercentile: 1, ElitePercentile: 0.5, MutationRate: 0.1, Threads: 1}

	_, err := RunGenetic(cat, tl, params, StopCondition{}, nil)
	assert.ErrorIs(t, err, ErrNoStopCondition)
}

func TestRunGenetic_CancelStopsLoop(t *testing.T) {
	cat := buildGeneticCatalog(t)
	tl := buildTimeline(cat)
	params := GeneticParams{
		Population:      10,
		BreedPercentile: 0.5,
		ElitePercentile: 0.5,
		MutationRate:    0,
		Threads:         2,
	}
	cancel := make(chan struct{})
	stop := StopCondition{Cancel: cancel}

	rounds := 0
	_, err := RunGenetic(cat, tl, params, stop, func(round int, best Experiment) {
		rounds = round
		if rounds == 3 {
			close(cancel)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rounds, "the round in which Cancel is closed must be the last one run")
}

func TestRunGenetic_StallStopsEarly(t *testing.T) {
	cat := buildGeneticCatalog(t)
	tl := buildTimeline(cat)
	params := GeneticParams{
		Population:      10,
		BreedPercentile: 0.5,
		ElitePercentile: 0.5,
		MutationRate:    0,
		Threads:         2,
	}
	stop := StopCondition{MaxRounds: 1000, StallRounds: 2}

	var rounds int
	_, err := RunGenetic(cat, tl, params, stop, func(round int, best Experiment) {
		rounds = round
	})
	require.NoError(t, err)
	assert.Less(t, rounds, 1000)
}

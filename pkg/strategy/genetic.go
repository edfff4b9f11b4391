package strategy

import (
	"math"
	"math/rand"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/evaluator"
	"github.com/anonproto/circuitsim/pkg/timeline"
)

// GeneticParams configures one genetic search (§4.4.1).
type GeneticParams struct {
	Population        int
	InitialWeighted    bool // draw initial circuits from the bandwidth-weighted pool
	BreedPercentile    float64
	BreedWeighted      bool // weight parent sampling by floor(score/1024)
	ElitePercentile    float64
	MutationRate       float64
	Threads            int
}

// RoundCallback is invoked once per completed round with the round number
// (1-indexed) and the current best Experiment.
type RoundCallback func(round int, best Experiment)

// RunGenetic runs the genetic search to completion against stop, returning
// the best Experiment found. It returns ErrNoStopCondition if stop is
// unbounded in every dimension.
func RunGenetic(cat *catalog.Catalog, tl timeline.Timeline, params GeneticParams, stop StopCondition, onRound RoundCallback) (Experiment, error) {
	if stop.Unbounded() {
		return Experiment{}, ErrNoStopCondition
	}

	population := initPopulation(cat, params)

	var best Experiment
	bestFitness := math.Inf(-1)
	stallRounds := 0
	round := 0

	for {
		round++
		scorePopulation(cat, tl, population, params.Threads)
		sort.Slice(population, func(i, j int) bool { return population[i].Fitness > population[j].Fitness })

		if population[0].Fitness > bestFitness {
			bestFitness = population[0].Fitness
			best = population[0].Clone()
			stallRounds = 0
		} else {
			stallRounds++
		}

		if onRound != nil {
			onRound(round, best)
		}

		if stop.Done(round, stallRounds) {
			break
		}

		population = nextGeneration(cat, population, params)
	}

	return best, nil
}

func initPopulation(cat *catalog.Catalog, params GeneticParams) []Experiment {
	downloads := cat.Downloads()
	population := make([]Experiment, params.Population)
	for i := range population {
		assignment := make(evaluator.Assignment, len(downloads))
		for d := range downloads {
			assignment[catalog.DownloadHandle(d)] = drawCandidate(cat, catalog.DownloadHandle(d), params.InitialWeighted)
		}
		population[i] = Experiment{Assignment: assignment}
	}
	return population
}

func drawCandidate(cat *catalog.Catalog, d catalog.DownloadHandle, weighted bool) catalog.CircuitHandle {
	dl := cat.Download(d)
	candidates := dl.Pool
	if weighted && len(dl.WeightedPool) > 0 {
		candidates = dl.WeightedPool
	}
	return candidates[rand.Intn(len(candidates))]
}

func scorePopulation(cat *catalog.Catalog, tl timeline.Timeline, population []Experiment, threads int) {
	if threads < 1 {
		threads = 1
	}
	p := pool.New().WithMaxGoroutines(threads)
	for i := range population {
		i := i
		p.Go(func() {
			total, err := evaluator.Integrate(cat, tl, population[i].Assignment)
			if err != nil {
				population[i].Fitness = math.Inf(-1)
				return
			}
			population[i].Fitness = total
		})
	}
	p.Wait()
}

func nextGeneration(cat *catalog.Catalog, scored []Experiment, params GeneticParams) []Experiment {
	n := len(scored)
	eliteCount := ceilPercentile(params.ElitePercentile, n)
	breedCount := ceilPercentile(params.BreedPercentile, n)
	if breedCount < 1 {
		breedCount = 1
	}
	breedPool := scored[:breedCount]

	next := make([]Experiment, 0, n)
	for i := 0; i < eliteCount && i < n; i++ {
		next = append(next, scored[i].Clone())
	}

	downloads := cat.Downloads()
	for len(next) < n {
		parent1 := selectParent(breedPool, params.BreedWeighted)
		parent2 := selectParent(breedPool, params.BreedWeighted)
		child := make(evaluator.Assignment, len(downloads))
		for d := range downloads {
			h := catalog.DownloadHandle(d)
			if rand.Float64() < params.MutationRate {
				child[h] = drawCandidate(cat, h, false)
			} else if rand.Intn(2) == 0 {
				child[h] = parent1.Assignment[h]
			} else {
				child[h] = parent2.Assignment[h]
			}
		}
		next = append(next, Experiment{Assignment: child})
	}
	return next
}

// selectParent draws one Experiment from candidates, uniformly or weighted
// by floor(score/1024) when weighted is set (§4.4.1 step 3).
func selectParent(candidates []Experiment, weighted bool) Experiment {
	if !weighted {
		return candidates[rand.Intn(len(candidates))]
	}
	weights := make([]int64, len(candidates))
	var total int64
	for i, e := range candidates {
		w := int64(e.Fitness) / 1024
		if w < 1 {
			w = 1
		}
		weights[i] = w
		total += w
	}
	r := rand.Int63n(total)
	for i, w := range weights {
		if r < w {
			return candidates[i]
		}
		r -= w
	}
	return candidates[len(candidates)-1]
}

func ceilPercentile(p float64, n int) int {
	if p <= 0 {
		return 0
	}
	c := int(math.Ceil(p * float64(n)))
	if c > n {
		c = n
	}
	return c
}

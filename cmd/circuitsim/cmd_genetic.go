package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anonproto/circuitsim/pkg/strategy"
	"github.com/anonproto/circuitsim/pkg/timeline"
)

var geneticCmd = &cobra.Command{
	Use:   "genetic <downloads-file> <relays-file>",
	Short: "Assign circuits with a population-based genetic search",
	Args:  cobra.ExactArgs(2),
	RunE:  runGenetic,
}

func init() {
	geneticCmd.Flags().Int("population", 100, "Population size")
	geneticCmd.Flags().Bool("initial-unweighted", false, "Draw each experiment's initial circuits uniformly instead of bandwidth-weighted")
	geneticCmd.Flags().Float64("breed-percentile", 0.5, "Fraction of the population eligible to breed")
	geneticCmd.Flags().Bool("breed-unweighted", false, "Sample breeding parents uniformly instead of score-weighted")
	geneticCmd.Flags().Float64("elite-percentile", 0.1, "Fraction of the population carried over unchanged each round")
	geneticCmd.Flags().Float64("mutate", 0.05, "Per-download mutation probability")
	geneticCmd.Flags().Int("threads", 4, "Worker pool size for parallel experiment scoring")
	geneticCmd.Flags().Int("rounds", 0, "Stop after this many rounds (0 disables)")
	geneticCmd.Flags().Duration("deadline", 0, "Stop after this much wall-clock time has elapsed (0 disables)")
	geneticCmd.Flags().Int("stall-rounds", 0, "Stop after this many rounds without an improved best fitness (0 disables)")

	viper.BindPFlag("genetic.population", geneticCmd.Flags().Lookup("population"))
	viper.BindPFlag("genetic.breed-percentile", geneticCmd.Flags().Lookup("breed-percentile"))
	viper.BindPFlag("genetic.elite-percentile", geneticCmd.Flags().Lookup("elite-percentile"))
	viper.BindPFlag("genetic.mutate", geneticCmd.Flags().Lookup("mutate"))
	viper.BindPFlag("genetic.threads", geneticCmd.Flags().Lookup("threads"))

	rootCmd.AddCommand(geneticCmd)
}

func runGenetic(cmd *cobra.Command, args []string) error {
	rc, err := setupRun(cmd, args[0], args[1], "genetic")
	if err != nil {
		return err
	}
	defer rc.emitter.Close()

	population, _ := cmd.Flags().GetInt("population")
	initialUnweighted, _ := cmd.Flags().GetBool("initial-unweighted")
	breedPercentile, _ := cmd.Flags().GetFloat64("breed-percentile")
	breedUnweighted, _ := cmd.Flags().GetBool("breed-unweighted")
	elitePercentile, _ := cmd.Flags().GetFloat64("elite-percentile")
	mutate, _ := cmd.Flags().GetFloat64("mutate")
	threads, _ := cmd.Flags().GetInt("threads")
	rounds, _ := cmd.Flags().GetInt("rounds")
	deadline, _ := cmd.Flags().GetDuration("deadline")
	stallRounds, _ := cmd.Flags().GetInt("stall-rounds")

	params := strategy.GeneticParams{
		Population:      population,
		InitialWeighted: !initialUnweighted,
		BreedPercentile: breedPercentile,
		BreedWeighted:   !breedUnweighted,
		ElitePercentile: elitePercentile,
		MutationRate:    mutate,
		Threads:         threads,
	}

	stop := strategy.StopCondition{MaxRounds: rounds, StallRounds: stallRounds}
	if deadline > 0 {
		stop.Deadline = time.Now().Add(deadline)
	}
	if stop.Unbounded() {
		// No --rounds/--deadline/--stall-rounds given: run until SIGINT,
		// the explicit opt-in form of the original's while(true) loop.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		cancel := make(chan struct{})
		go func() {
			<-sigCh
			close(cancel)
		}()
		stop.Cancel = cancel
		rc.logger.Messagef("no stop condition given, running until interrupted (Ctrl-C)")
	}

	tl := timeline.Build(rc.cat.Downloads())

	bestSoFar := 0.0
	onRound := func(round int, best strategy.Experiment) error {
		if best.Fitness > bestSoFar {
			bestSoFar = best.Fitness
		}
		if err := rc.reporter.WriteRound(round, best.Assignment, best.Fitness, bestSoFar); err != nil {
			return err
		}
		if isInteractive() {
			fmt.Printf("\rround %d: fitness=%.2f best=%.2f", round, best.Fitness, bestSoFar)
		} else {
			rc.logger.Messagef("round %d: fitness=%.2f best=%.2f", round, best.Fitness, bestSoFar)
		}
		return nil
	}

	var roundErr error
	best, err := strategy.RunGenetic(rc.cat, tl, params, stop, func(round int, best strategy.Experiment) {
		if roundErr == nil {
			roundErr = onRound(round, best)
		}
	})
	if isInteractive() {
		fmt.Println()
	}
	if err != nil {
		return err
	}
	if roundErr != nil {
		return roundErr
	}

	return rc.reporter.WriteFinal(best.Assignment)
}

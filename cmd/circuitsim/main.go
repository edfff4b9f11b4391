// Command circuitsim is an offline circuit-assignment simulator for an
// onion-routed anonymity network: given relays, downloads, and a universe
// of candidate circuits, it assigns one circuit per download using one of
// four strategies (genetic, greedy, dwc, maxbw) and reports the result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "circuitsim",
	Short: "Offline circuit-assignment simulator for an onion-routed anonymity network",
	Long: `circuitsim assigns one candidate circuit to each download so as to
maximise the aggregate bytes transferred over their lifetimes, subject to
relays sharing capacity max-min fairly among every download whose circuit
touches them.

Each subcommand runs a different assignment strategy over the same
relays/downloads/circuits input files:

  genetic   population-based search, reports a snapshot every round
  greedy    per-download search in one of three visiting orders
  dwc       online Diverse Weighted Circuits congestion-aware heuristic
  maxbw     diagnostic upper bound: every candidate circuit active at once`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("circuits", "", "Optional client/time-scoped circuits file")
	rootCmd.PersistentFlags().Bool("pruned", false, "Build the capacity-greedy pruned circuit universe instead of the full O(n^3) one")
	rootCmd.PersistentFlags().String("output", "circuits", "Output directory for report files")
	rootCmd.PersistentFlags().String("log", "info", "Log level: debug, info, message, warning, error")

	viper.BindPFlag("circuits", rootCmd.PersistentFlags().Lookup("circuits"))
	viper.BindPFlag("pruned", rootCmd.PersistentFlags().Lookup("pruned"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anonproto/circuitsim/pkg/strategy"
)

var greedyCmd = &cobra.Command{
	Use:   "greedy <downloads-file> <relays-file>",
	Short: "Assign circuits by visiting downloads in a fixed order, greedily maximising integrated throughput",
	Args:  cobra.ExactArgs(2),
	RunE:  runGreedy,
}

func init() {
	greedyCmd.Flags().String("selection", string(strategy.SelectionInorder), "Visiting order: inorder, longest, or shortest")
	rootCmd.AddCommand(greedyCmd)
}

func runGreedy(cmd *cobra.Command, args []string) error {
	rc, err := setupRun(cmd, args[0], args[1], "greedy")
	if err != nil {
		return err
	}
	defer rc.emitter.Close()

	selection, _ := cmd.Flags().GetString("selection")

	assignment, err := strategy.RunGreedy(rc.cat, strategy.Selection(selection))
	if err != nil {
		return err
	}

	rc.logger.Messagef("run %s: greedy/%s complete", rc.runID, selection)
	fmt.Fprintf(cmd.OutOrStdout(), "greedy/%s assigned %d downloads\n", selection, len(assignment))

	return rc.reporter.WriteFinal(assignment)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anonproto/circuitsim/pkg/strategy"
	"github.com/anonproto/circuitsim/pkg/timeline"
)

var dwcCmd = &cobra.Command{
	Use:   "dwc <downloads-file> <relays-file>",
	Short: "Assign circuits online by Diverse Weighted Circuits, a congestion-aware heuristic",
	Args:  cobra.ExactArgs(2),
	RunE:  runDWC,
}

func init() {
	dwcCmd.Flags().Int("threads", 4, "Worker pool size for parallel candidate scoring")
	viper.BindPFlag("dwc.threads", dwcCmd.Flags().Lookup("threads"))
	rootCmd.AddCommand(dwcCmd)
}

func runDWC(cmd *cobra.Command, args []string) error {
	rc, err := setupRun(cmd, args[0], args[1], "dwc")
	if err != nil {
		return err
	}
	defer rc.emitter.Close()

	threads, _ := cmd.Flags().GetInt("threads")

	tl := timeline.Build(rc.cat.Downloads())

	assignment, err := strategy.RunDWC(rc.cat, tl, threads)
	if err != nil {
		return err
	}

	rc.logger.Messagef("run %s: dwc complete", rc.runID)
	fmt.Fprintf(cmd.OutOrStdout(), "dwc assigned %d downloads\n", len(assignment))

	return rc.reporter.WriteFinal(assignment)
}

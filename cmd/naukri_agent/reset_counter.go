package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swapnil/naukri-auto-apply/internal/throttle"
)

var resetCounterCommand = &cobra.Command{
	Use:   "reset-counter",
	Short: "Zero today's application counter",
	Long:  "Zeroes the daily application counter so a fresh batch can run. The lifetime counter is never touched.",
	RunE:  resetCounterCmd,
}

var resetCounterFile string

func init() {
	resetCounterCommand.Flags().StringVar(&resetCounterFile, "counter-file", defaultCounterFile, "Path to the daily application counter")
	rootCmd.AddCommand(resetCounterCommand)
}

func resetCounterCmd(_ *cobra.Command, _ []string) error {
	tracker := throttle.NewFile(resetCounterFile)
	if err := tracker.Reset(); err != nil {
		return fmt.Errorf("failed to reset counter: %w", err)
	}

	count, err := tracker.Count()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Counter reset: %d applied today, %d all time\n",
		count.SuccessfullyApplied, count.SuccessfullyAppliedTillNow)
	return nil
}

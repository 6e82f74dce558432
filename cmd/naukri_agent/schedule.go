package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/swapnil/naukri-auto-apply/internal/config"
	"github.com/swapnil/naukri-auto-apply/internal/scheduler"
)

var scheduleCommand = &cobra.Command{
	Use:   "schedule",
	Short: "Run apply batches unattended on a cron schedule",
	Long: `Starts a long-running daemon that executes an apply batch on the
configured cron spec. The daily ceiling still applies to every batch, so
extra ticks within a day drain nothing once the budget is spent.`,
	RunE: scheduleCmd,
}

var (
	scheduleCronSpec string
	scheduleAI       bool
)

func init() {
	scheduleCommand.Flags().AddFlagSet(runCommand.Flags())
	scheduleCommand.Flags().StringVar(&scheduleCronSpec, "cron", "", `Cron spec, e.g. "30 9 * * *" or "@every 8h"`)
	scheduleCommand.Flags().BoolVar(&scheduleAI, "ai", false, "Use the LLM matcher for scheduled batches")
	rootCmd.AddCommand(scheduleCommand)
}

func scheduleCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("cron") {
		cfg.CronSpec = scheduleCronSpec
	}
	if cfg.CronSpec == "" {
		return fmt.Errorf("a cron spec is required (--cron or cron_spec in config)")
	}

	creds := config.CredentialsFromEnv()
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("NAUKRI_USERNAME and NAUKRI_PASSWORD must be set")
	}
	if scheduleAI && creds.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set for the AI flow")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(cfg.CronSpec, func(ctx context.Context) error {
		return executeBatch(ctx, cfg, creds, scheduleAI)
	})
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	<-ctx.Done()
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swapnil/naukri-auto-apply/internal/config"
)

var runAICommand = &cobra.Command{
	Use:   "run-ai",
	Short: "Apply using the LLM matcher instead of the rule-based scorer",
	Long: `Same per-job flow as run, but each posting is judged by the Gemini
matcher against the resume text. Rate limits retry with exponential backoff;
persistent failures fall back to the rule-based scorer. The daily ceiling is
higher on this flow.`,
	RunE: runAIBatchCmd,
}

func init() {
	// Shares the run command's flag set; cobra requires registration once
	// per command, so the flags are re-declared through the same variables.
	runAICommand.Flags().AddFlagSet(runCommand.Flags())
	rootCmd.AddCommand(runAICommand)
}

func runAIBatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required for the AI flow")
	}

	creds := config.CredentialsFromEnv()
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("NAUKRI_USERNAME and NAUKRI_PASSWORD must be set")
	}
	if creds.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set for the AI flow")
	}

	return executeBatch(context.Background(), cfg, creds, true)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swapnil/naukri-auto-apply/internal/config"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Score the job queue and apply to eligible postings",
	Long: `Processes the job queue one posting at a time: navigate, check the
already-applied indicator, score against the weighted skill profile, and
submit when eligible, within the daily application ceiling.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runBatchCmd,
}

var (
	runConfigPath  string
	runJobsFile    string
	runResume      string
	runResultsDir  string
	runSessionDir  string
	runCounterFile string
	runDatabaseURL string
	runMNC         bool
	runHeadless    bool
	runVerbose     bool
	runTesting     bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runJobsFile, "jobs", "j", "", "Path to the JSON job queue")
	runCommand.Flags().StringVar(&runResume, "resume", "", "Path to resume text file (AI flow)")
	runCommand.Flags().StringVar(&runResultsDir, "results-dir", "", "Directory for result artifacts")
	runCommand.Flags().StringVar(&runSessionDir, "session-dir", "", "Directory for stored sessions")
	runCommand.Flags().StringVar(&runCounterFile, "counter-file", "", "Path to the daily application counter")
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL for the record mirror (optional)")
	runCommand.Flags().BoolVar(&runMNC, "mnc", false, "Run against the large-company segment")
	runCommand.Flags().BoolVar(&runHeadless, "headless", true, "Run the browser headless")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVar(&runTesting, "testing", false, "Suppress report delivery")

	rootCmd.AddCommand(runCommand)
}

// loadRunConfig merges the config file with explicitly set flags, CLI wins.
func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.Load(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	if cmd.Flags().Changed("jobs") {
		cfg.JobsFile = runJobsFile
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("results-dir") {
		cfg.ResultsDir = runResultsDir
	}
	if cmd.Flags().Changed("session-dir") {
		cfg.SessionDir = runSessionDir
	}
	if cmd.Flags().Changed("counter-file") {
		cfg.CounterFile = runCounterFile
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("mnc") {
		cfg.ScrapeMNC = runMNC
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = runHeadless
	} else if runConfigPath == "" {
		cfg.Headless = true
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("testing") {
		cfg.Testing = runTesting
	}

	cfg.EnvOverrides()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	creds := config.CredentialsFromEnv()
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("NAUKRI_USERNAME and NAUKRI_PASSWORD must be set")
	}

	return executeBatch(context.Background(), cfg, creds, false)
}

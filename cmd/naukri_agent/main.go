// Package main provides the entry point for the Naukri auto-apply agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "naukri_agent",
	Short: "Naukri auto-apply agent",
	Long:  "Naukri auto-apply agent scores job postings against a weighted skill profile and submits applications for eligible ones, within a daily ceiling.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pipelines-service",
	Short: "Practice-management pipeline service",
	Long:  "Service pipeline workflow manager for the practice-management application: status transitions, billing completion and follow-up enrollment over the Airtable record store.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

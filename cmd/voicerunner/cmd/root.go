package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version of the voicerunner binary.
const Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "voicerunner",
	Short: "Voice Runner corpus collection service",
	Long: `Backend for the Voice Runner data-collection game: ingests gameplay
telemetry and voice recordings and serves aggregate statistics and full
corpus exports for research analysis.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

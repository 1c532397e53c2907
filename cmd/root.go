package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jobguard",
	Short: "Distributed job lock coordinator",
	Long: `Jobguard coordinates periodic or triggered jobs across a fleet of
instances sharing a Redis store, guaranteeing each job runs on at most one
instance at a time. When Redis is unreachable it degrades to process-local
coordination.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

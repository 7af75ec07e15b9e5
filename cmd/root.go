package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"amalgo/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "amalgo",
	Short: "Merge a C/C++ project into one single-header file",
	Long: `Amalgo merges a set of interdependent headers and sources into one
self-contained single-header library. Files are ordered so that every header
appears above everything that includes it, external includes are deduplicated
into a sorted block at the top, and redundant directives are stripped.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if logfile != "" {
			f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			logger.AddWriterForAll(f)
		}
		return nil
	},
}

var logfile string
var verbose bool

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}

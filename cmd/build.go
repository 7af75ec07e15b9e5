package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"amalgo/core/amalgamator"
	"amalgo/core/config"
	"amalgo/core/logger"
)

var (
	flagOutput     string
	flagHeaderDirs []string
	flagSourceDirs []string
	flagRecursive  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the merged single-header file",
	Long: `Discovers header and source files under the configured directories,
orders them by their internal include dependencies, and writes the merged
single-header output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("build called")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if err := amalgamator.New(cfg).RunAndWrite(); err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		return nil
	},
}

// loadConfig reads amalgo.yaml from the working directory and applies any
// flags the user set on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("output") {
		cfg.Output = flagOutput
	}
	if cmd.Flags().Changed("header-dir") {
		cfg.HeaderDirs = flagHeaderDirs
	}
	if cmd.Flags().Changed("source-dir") {
		cfg.SourceDirs = flagSourceDirs
	}
	if cmd.Flags().Changed("recursive") {
		cfg.Recursive = flagRecursive
	}

	return cfg, nil
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagOutput, "output", "", "File path of the merged single-header output (empty writes to stdout)")
	cmd.Flags().StringArrayVar(&flagHeaderDirs, "header-dir", nil, "Directory containing header files (repeatable, doubles as include root)")
	cmd.Flags().StringArrayVar(&flagSourceDirs, "source-dir", nil, "Directory containing source files (repeatable)")
	cmd.Flags().BoolVar(&flagRecursive, "recursive", false, "Recursively scan directories for header and source files")
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addBuildFlags(buildCmd)
}

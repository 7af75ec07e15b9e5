package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"amalgo/core/config"
	"amalgo/core/logger"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default amalgo.yaml to the current directory",
	Long:  `Creates an amalgo.yaml with the default header/source directories, extension sets, and rewrite rules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")

		if _, err := os.Stat(config.FileName); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", config.FileName)
		}

		if err := config.Default().Write("."); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", config.FileName)
		fmt.Printf("Next Steps:\n")
		fmt.Printf("  - edit %s to match your project layout\n", config.FileName)
		fmt.Printf("  - amalgo build\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite an existing config file")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"amalgo/core/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of Amalgo",
	Long:  `Displays the version of Amalgo.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Amalgo %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

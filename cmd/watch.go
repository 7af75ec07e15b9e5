package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"amalgo/core/amalgamator"
	"amalgo/core/logger"
	"amalgo/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the merged header on file changes",
	Long: `Builds the merged single-header file, then watches the configured
directories and rebuilds whenever a header or source file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Output == "" {
			return fmt.Errorf("watch requires an output file, stdout is not watchable")
		}

		a := amalgamator.New(cfg)
		w, err := watcher.NewFileWatcher(cfg)
		if err != nil {
			return err
		}

		roots := append(append([]string{}, cfg.HeaderDirs...), cfg.SourceDirs...)
		w.AddOnStartFunc(func() error {
			logger.Info("Watching %v", roots)
			return a.RunAndWrite()
		})
		w.AddOnChangeFunc(a.RunAndWrite)
		w.AddOnCloseFunc(func() error {
			logger.Info("Stopped watching")
			return nil
		})

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			w.Close()
		}()

		return w.Watch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addBuildFlags(watchCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pantry/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "Pantry is a personal pantry inventory tracker with recipe suggestions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newListCmd(cfg, &jsonOutput),
		newAddCmd(cfg, &jsonOutput),
		newDeleteCmd(cfg),
		newRecipeCmd(cfg, &jsonOutput),
		newExportCmd(cfg),
		newImportCmd(cfg, &jsonOutput),
		newInfoCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
	)

	return cmd
}

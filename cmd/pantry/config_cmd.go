package main

import (
	"errors"

	"github.com/spf13/cobra"

	"pantry/internal/config"
)

func newConfigCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set configuration values",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a config value",
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 0 {
					return errors.New("key is required")
				}
				value, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				return writePlain("%s\n", value)
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a config value in the global config file",
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) < 2 {
					return errors.New("key and value are required")
				}
				path, err := config.GlobalPath()
				if err != nil {
					return err
				}
				return config.SetKey(path, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List valid config keys",
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, key := range config.AllowedKeys() {
					if err := writePlain("%s\n", key); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.GlobalPath()
				if err != nil {
					return err
				}
				return writePlain("%s\n", path)
			},
		},
	)

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"pantry/internal/api"
	"pantry/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server and database info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				info, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(info)
				}
				if err := writePlain("db_path: %s\n", info.DBPath); err != nil {
					return err
				}
				if err := writePlain("schema_version: %d\n", info.SchemaVersion); err != nil {
					return err
				}
				return writePlain("total_items: %d\n", info.TotalItems)
			})
		},
	}
}

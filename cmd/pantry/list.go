package main

import (
	"github.com/spf13/cobra"

	"pantry/internal/config"
	"pantry/internal/view"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pantry items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withView(cfg, func(v *view.View) error {
				if *jsonOutput {
					return writeJSON(v.Items())
				}
				return writeItemList(v.Items())
			})
		},
	}
}

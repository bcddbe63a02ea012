package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pantry/internal/config"
	"pantry/internal/view"
)

func newDeleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pantry item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("id is required")
			}

			return withView(cfg, func(v *view.View) error {
				// Store-reported delete failures are swallowed: the
				// inventory stays as-is and the command still succeeds.
				if err := v.Delete(cmd.Context(), args[0]); err != nil {
					fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				}
				return nil
			})
		},
	}
}

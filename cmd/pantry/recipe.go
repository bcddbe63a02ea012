package main

import (
	"github.com/spf13/cobra"

	"pantry/internal/config"
	"pantry/internal/view"
)

func newRecipeCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "recipe",
		Short: "Suggest a recipe from the current inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withView(cfg, func(v *view.View) error {
				text, err := v.SuggestRecipe(cmd.Context())
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(map[string]string{
						"status": string(v.Recipe().Status),
						"recipe": text,
					})
				}
				return writePlain("%s\n", text)
			})
		},
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pantry/internal/api"
	"pantry/internal/config"
)

func newImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import inventory records from a YAML file (use - for stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("file is required")
			}

			doc, err := readInventoryDocument(args[0])
			if err != nil {
				return err
			}
			if len(doc.Items) == 0 {
				return errors.New("no items found in input")
			}

			return withClient(cfg, func(client *api.Client) error {
				created := make([]string, 0, len(doc.Items))
				for _, rec := range doc.Items {
					item, err := client.CreateItem(cmd.Context(), api.ItemCreateRequest{
						Name:     rec.Name,
						Quantity: rec.Quantity,
						ImageURL: rec.ImageURL,
					})
					if err != nil {
						return fmt.Errorf("import %q: %w", rec.Name, err)
					}
					created = append(created, item.ID)
				}

				if *jsonOutput {
					return writeJSON(map[string]any{"created": len(created), "ids": created})
				}
				return writePlain("imported %d items\n", len(created))
			})
		},
	}
}

func readInventoryDocument(path string) (inventoryDocument, error) {
	var doc inventoryDocument

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return doc, err
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse inventory: %w", err)
	}
	return doc, nil
}

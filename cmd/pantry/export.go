package main

import (
	"github.com/spf13/cobra"

	"pantry/internal/config"
	"pantry/internal/models"
	"pantry/internal/view"
)

// inventoryDocument is the YAML shape written by export and read by import.
type inventoryDocument struct {
	Items []inventoryRecord `yaml:"items"`
}

type inventoryRecord struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
	ImageURL string `yaml:"image_url,omitempty"`
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the inventory as YAML to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withView(cfg, func(v *view.View) error {
				return writeYAML(toInventoryDocument(v.Items()))
			})
		},
	}
}

func toInventoryDocument(items []models.Item) inventoryDocument {
	doc := inventoryDocument{Items: make([]inventoryRecord, 0, len(items))}
	for _, item := range items {
		doc.Items = append(doc.Items, inventoryRecord{
			Name:     item.Name,
			Quantity: item.Quantity,
			ImageURL: item.ImageURL,
		})
	}
	return doc
}

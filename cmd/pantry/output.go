package main

import (
	"fmt"
	"os"

	"pantry/internal/format"
	"pantry/internal/models"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writeYAML(payload any) error {
	return format.YAMLFormatter{}.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeItemList(items []models.Item) error {
	for _, item := range items {
		if err := writePlain("%s\t%s\t%d\t%s\n", item.ID, item.Name, item.Quantity, item.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

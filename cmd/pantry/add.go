package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pantry/internal/capture"
	"pantry/internal/config"
	"pantry/internal/view"
)

func newAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		quantity  int
		imagePath string
		useCamera bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a pantry item with an image from a file or the camera",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
			}
			if imagePath != "" && useCamera {
				return errors.New("--image and --camera are mutually exclusive")
			}

			return withView(cfg, func(v *view.View) error {
				ctx := cmd.Context()

				v.SetDraft(view.Draft{Name: args[0], Quantity: quantity})

				switch {
				case useCamera:
					v.OpenCamera()
					if err := v.TakePicture(ctx, capture.NewCameraSource(cfg.Camera.Command)); err != nil {
						return err
					}
				case imagePath != "":
					if err := v.AttachFile(ctx, capture.NewFileSource(imagePath)); err != nil {
						return err
					}
				}

				item, err := v.Submit(ctx)
				if err != nil {
					if view.IsValidation(err) {
						return fmt.Errorf("%s", v.Error())
					}
					return err
				}

				if *jsonOutput {
					return writeJSON(item)
				}
				return writePlain("%s\n", item.ID)
			})
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "item quantity")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to an image file")
	cmd.Flags().BoolVar(&useCamera, "camera", false, "capture the image with the configured camera command")

	return cmd
}

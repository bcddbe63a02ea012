// Package view owns the client-side pantry state: the cached item list,
// the in-progress draft, the pending image capture and the recipe
// suggestion state. It orchestrates the API client, blob upload, capture
// sources and recipe suggester; none of them call back into it.
//
// A View is driven by one user interaction at a time and is not safe for
// concurrent use.
package view

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"pantry/internal/api"
	"pantry/internal/capture"
	"pantry/internal/models"
	"pantry/internal/recipe"
)

// draftErrorMessage is the fixed message shown for any invalid draft.
const draftErrorMessage = "Please enter a valid name, quantity, and take a picture."

// RecipeStatus tracks the suggestion lifecycle.
type RecipeStatus string

const (
	RecipeIdle    RecipeStatus = "idle"
	RecipeLoading RecipeStatus = "loading"
	RecipeReady   RecipeStatus = "ready"
	RecipeFailed  RecipeStatus = "failed"
)

// RecipeState is the current suggestion status and, when ready, its text.
type RecipeState struct {
	Status RecipeStatus
	Text   string
}

// Draft is the not-yet-submitted new-item form state.
type Draft struct {
	Name     string
	Quantity int
}

// ItemAPI is the slice of the pantry API the view depends on.
type ItemAPI interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, req api.ItemCreateRequest) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
	UploadImage(ctx context.Context, r io.Reader, filename, mediaType string) (api.ImageUploadResponse, error)
}

// View is the pantry client state machine.
type View struct {
	api     ItemAPI
	recipes recipe.Suggester
	logger  *slog.Logger

	items      []models.Item
	draft      Draft
	pending    *capture.Payload
	cameraOpen bool
	errMsg     string
	recipe     RecipeState
}

// New creates a view with injected collaborators.
func New(itemAPI ItemAPI, recipes recipe.Suggester, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	return &View{
		api:     itemAPI,
		recipes: recipes,
		logger:  logger,
		recipe:  RecipeState{Status: RecipeIdle},
	}
}

// Load fetches the inventory from the service and populates the cache.
// On failure the list stays empty and the error is returned.
func (v *View) Load(ctx context.Context) error {
	items, err := v.api.ListItems(ctx)
	if err != nil {
		v.logger.Error("fetch pantry items", "error", err)
		return fmt.Errorf("fetch pantry items: %w", err)
	}
	v.items = items
	return nil
}

// Items returns the cached inventory.
func (v *View) Items() []models.Item {
	return v.items
}

// SetDraft replaces the new-item form state.
func (v *View) SetDraft(draft Draft) {
	v.draft = draft
}

// Draft returns the current form state.
func (v *View) Draft() Draft {
	return v.draft
}

// Error returns the user-visible error message, if any.
func (v *View) Error() string {
	return v.errMsg
}

// CameraOpen reports whether the viewfinder is active.
func (v *View) CameraOpen() bool {
	return v.cameraOpen
}

// PendingImage returns the most recent capture, if any.
func (v *View) PendingImage() *capture.Payload {
	return v.pending
}

// Recipe returns the suggestion state.
func (v *View) Recipe() RecipeState {
	return v.recipe
}

// OpenCamera activates the viewfinder.
func (v *View) OpenCamera() {
	v.cameraOpen = true
}

// CloseCamera deactivates the viewfinder without capturing.
func (v *View) CloseCamera() {
	v.cameraOpen = false
}

// TakePicture captures one frame from the camera source. The capture is
// single-shot: the viewfinder closes whether or not it succeeds, and a
// successful frame replaces any previously pending image.
func (v *View) TakePicture(ctx context.Context, src capture.Source) error {
	v.cameraOpen = false
	payload, err := src.Capture(ctx)
	if err != nil {
		v.logger.Error("camera capture", "error", err)
		return err
	}
	v.pending = &payload
	return nil
}

// AttachFile loads an image from the file-picker source, replacing any
// previously pending image.
func (v *View) AttachFile(ctx context.Context, src capture.Source) error {
	payload, err := src.Capture(ctx)
	if err != nil {
		v.logger.Error("read image file", "error", err)
		return err
	}
	v.pending = &payload
	return nil
}

// Submit validates the draft, uploads the pending image, creates the
// record and appends the stored item to the cache. An invalid draft sets
// the fixed error message and mutates nothing else.
func (v *View) Submit(ctx context.Context) (models.Item, error) {
	var zero models.Item

	if strings.TrimSpace(v.draft.Name) == "" || v.draft.Quantity <= 0 || v.pending == nil {
		v.errMsg = draftErrorMessage
		return zero, &ValidationError{Message: draftErrorMessage}
	}

	upload, err := v.api.UploadImage(ctx, bytes.NewReader(v.pending.Data), v.pending.Filename, v.pending.MediaType)
	if err != nil {
		v.logger.Error("upload image", "error", err)
		return zero, fmt.Errorf("upload image: %w", err)
	}

	item, err := v.api.CreateItem(ctx, api.ItemCreateRequest{
		Name:     v.draft.Name,
		Quantity: v.draft.Quantity,
		ImageURL: upload.URL,
	})
	if err != nil {
		v.logger.Error("create pantry item", "error", err)
		return zero, fmt.Errorf("create pantry item: %w", err)
	}

	v.items = append(v.items, item)
	v.draft = Draft{}
	v.pending = nil
	v.errMsg = ""
	return item, nil
}

// Delete removes an item from the store and, on success, from the cache.
// Failures leave the cached list untouched; there is no optimistic update
// to roll back.
func (v *View) Delete(ctx context.Context, id string) error {
	if err := v.api.DeleteItem(ctx, id); err != nil {
		v.logger.Error("delete pantry item", "id", id, "error", err)
		return fmt.Errorf("delete pantry item: %w", err)
	}

	kept := v.items[:0:0]
	for _, item := range v.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	v.items = kept
	return nil
}

// SuggestRecipe summarizes the cached inventory into a prompt and asks
// the suggester for a recipe. The recipe state moves through
// loading -> ready|failed.
func (v *View) SuggestRecipe(ctx context.Context) (string, error) {
	v.recipe = RecipeState{Status: RecipeLoading}

	summaries := make([]string, 0, len(v.items))
	for _, item := range v.items {
		summaries = append(summaries, item.Summary())
	}

	text, err := v.recipes.Suggest(ctx, summaries)
	if err != nil {
		v.logger.Error("suggest recipe", "error", err)
		v.recipe = RecipeState{Status: RecipeFailed}
		return "", fmt.Errorf("suggest recipe: %w", err)
	}

	v.recipe = RecipeState{Status: RecipeReady, Text: text}
	return text, nil
}

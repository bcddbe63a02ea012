// Package recipe asks an OpenRouter-compatible chat-completions endpoint
// for a recipe suggestion built from the current pantry inventory.
package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 60 * time.Second

	// fallbackText is returned when the endpoint answers 2xx with an
	// empty or unexpected choices shape.
	fallbackText = "No recipe found."
)

// Suggester is the single-operation recipe capability the view depends on.
type Suggester interface {
	Suggest(ctx context.Context, itemSummaries []string) (string, error)
}

// Client talks to a chat-completions endpoint with a fixed model id.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a recipe suggestion client.
func NewClient(endpoint, apiKey, model string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   logger,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// BuildPrompt turns "name: quantity" summaries into the request prompt.
func BuildPrompt(itemSummaries []string) string {
	return "Suggest a recipe using these ingredients: " + strings.Join(itemSummaries, ", ")
}

// Suggest issues one completion request and returns the suggestion text.
func (c *Client) Suggest(ctx context.Context, itemSummaries []string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("recipe api key is not configured")
	}

	prompt := BuildPrompt(itemSummaries)
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("requesting recipe suggestion", "model", c.model, "items", len(itemSummaries))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("recipe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("recipe endpoint error", "status", resp.StatusCode, "body", strings.TrimSpace(string(body)))
		return "", fmt.Errorf("recipe endpoint returned %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode recipe response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		c.logger.Warn("recipe response had no choices, using fallback")
		return fallbackText, nil
	}

	return parsed.Choices[0].Message.Content, nil
}

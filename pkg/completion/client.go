// Package completion wraps the upstream OpenAI-compatible chat completion
// API behind a small client interface.
package completion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LittleSteps/little-steps-backend/config"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/go-resty/resty/v2"
)

// ClientInterface defines the interface for completion client operations.
type ClientInterface interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Client calls the chat completions endpoint with a bounded timeout and no
// retries. Failures are the caller's problem; the chat service substitutes a
// fallback reply.
type Client struct {
	http        *resty.Client
	model       string
	maxTokens   int
	temperature float64
}

// Ensure Client implements the ClientInterface
var _ ClientInterface = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewClient(cfg *config.CompletionConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:        httpClient,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Complete sends the system prompt and user message to the completion API
// and returns the assistant's reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	log := logger.GetLogger()

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	var result chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		log.Errorw("Completion request failed", "error", err)
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		log.Warnw("Completion API returned non-OK status", "statusCode", resp.StatusCode())
		return "", fmt.Errorf("completion API returned status: %d", resp.StatusCode())
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	log.Debugw("Completion response received", "model", c.model, "chars", len(result.Choices[0].Message.Content))
	return result.Choices[0].Message.Content, nil
}

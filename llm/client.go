package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hmi-lab/llm-study/config"
	"github.com/hmi-lab/llm-study/model"
)

// Completion is the extracted payload of one successful upstream call.
type Completion struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Client performs one chat completions call. Implementations never retry;
// any failure is reported once and converted by the caller into a logged
// error-marker response.
type Client interface {
	Complete(ctx context.Context, messages []model.Message) (Completion, error)
}

// UpstreamError is a non-success response from the chat completions API.
type UpstreamError struct {
	Status string
}

func (e *UpstreamError) Error() string {
	return "llm: upstream returned " + e.Status
}

// ErrorMarker renders a failed call as the response text stored in the
// interaction log and returned to the participant.
func ErrorMarker(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return "Error: " + upstream.Status
	}
	return "Error: request failed"
}

type client struct {
	apiKey string
	apiURL string
	model  string
	http   *http.Client
}

func NewClient(cfg config.Config) Client {
	return &client{
		apiKey: cfg.APIKey,
		apiURL: cfg.APIUrl,
		model:  cfg.Model,
		http:   &http.Client{Timeout: cfg.LLMTimeout},
	}
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []model.Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message model.Message `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (c *client) Complete(ctx context.Context, messages []model.Message) (Completion, error) {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return Completion{}, fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return Completion{}, fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("llm: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Completion{}, &UpstreamError{Status: resp.Status}
	}

	var envelope chatResponse
	err = json.NewDecoder(resp.Body).Decode(&envelope)
	if err != nil {
		return Completion{}, fmt.Errorf("llm: parse response: %w", err)
	}
	if len(envelope.Choices) == 0 {
		return Completion{}, &UpstreamError{Status: "empty response"}
	}

	completion := Completion{Content: envelope.Choices[0].Message.Content}
	if envelope.Usage != nil {
		completion.InputTokens = envelope.Usage.PromptTokens
		completion.OutputTokens = envelope.Usage.CompletionTokens
	}
	return completion, nil
}

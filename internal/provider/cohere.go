// Package provider adapts third-party AI chat services.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultCohereChatURL = "https://api.cohere.com/v1/chat"
	DefaultCohereModel   = "command-a-03-2025"

	preamble = "You respond in concise sentences."
)

// ErrEmptyAnswer is returned when the provider replies without text.
var ErrEmptyAnswer = errors.New("provider returned an empty answer")

// ChatProvider answers a free-text question.
type ChatProvider interface {
	Chat(ctx context.Context, question string) (string, error)
}

// CohereConfig configures the Cohere chat endpoint and HTTP behavior.
type CohereConfig struct {
	APIKey     string
	Model      string
	ChatURL    string
	HTTPClient *http.Client
}

type CohereClient struct {
	cfg CohereConfig
}

type chatTurn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type cohereChatRequest struct {
	Model       string     `json:"model"`
	Message     string     `json:"message"`
	Preamble    string     `json:"preamble,omitempty"`
	ChatHistory []chatTurn `json:"chat_history,omitempty"`
}

// seedHistory primes every conversation with the same greeting exchange.
var seedHistory = []chatTurn{
	{Role: "USER", Message: "Hello"},
	{Role: "CHATBOT", Message: "Hi, how can I help you today?"},
}

func NewCohereClient(cfg CohereConfig) *CohereClient {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.ChatURL) == "" {
		cfg.ChatURL = DefaultCohereChatURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultCohereModel
	}
	return &CohereClient{cfg: cfg}
}

func (c *CohereClient) Chat(ctx context.Context, question string) (string, error) {
	apiKey := strings.TrimSpace(c.cfg.APIKey)
	if apiKey == "" {
		return "", fmt.Errorf("cohere api key is required")
	}

	requestBody, err := json.Marshal(cohereChatRequest{
		Model:       c.cfg.Model,
		Message:     question,
		Preamble:    preamble,
		ChatHistory: seedHistory,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ChatURL, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// The key travels only in the Authorization header and never appears in errors.
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read chat error body: %w", err)
		}
		return "", fmt.Errorf("chat request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Text       string `json:"text"`
		OutputText string `json:"output_text"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	answer := payload.Text
	if answer == "" {
		answer = payload.OutputText
	}
	if strings.TrimSpace(answer) == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}

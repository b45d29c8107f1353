package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/logger"

	"github.com/sirupsen/logrus"
)

// Failure classes of a completion call. The chat service maps each of these
// to a fallback reply instead of failing the chat turn.
var (
	// ErrUnavailable covers transport errors, timeouts and non-2xx statuses.
	ErrUnavailable = errors.New("completion provider unavailable")
	// ErrBadResponse covers bodies that cannot be decoded.
	ErrBadResponse = errors.New("malformed completion response")
	// ErrEmptyResponse covers responses without choices[0].message.content.
	ErrEmptyResponse = errors.New("completion response missing content")
)

// OpenRouterProvider implements Provider using direct OpenRouter API calls
type OpenRouterProvider struct {
	config *config.LLMConfig
	client *http.Client
}

// NewOpenRouterProvider creates a new OpenRouter provider with config.
// The client timeout bounds the single outbound call per chat turn.
func NewOpenRouterProvider(llmConfig *config.LLMConfig) *OpenRouterProvider {
	return &OpenRouterProvider{
		config: llmConfig,
		client: &http.Client{Timeout: llmConfig.Timeout},
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	TopP             float64   `json:"top_p"`
	FrequencyPenalty float64   `json:"frequency_penalty"`
	PresencePenalty  float64   `json:"presence_penalty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete sends a single-message chat completion request and returns the
// reply text. Exactly one attempt is made; no retries.
func (p *OpenRouterProvider) Complete(ctx context.Context, content string) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY not configured", ErrUnavailable)
	}

	reqBody := chatRequest{
		Model:            p.config.Model,
		Messages:         []Message{{Role: "user", Content: content}},
		MaxTokens:        2000,
		Temperature:      0.7,
		TopP:             1,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	logger.Log.WithFields(logrus.Fields{
		"model":         p.config.Model,
		"content_chars": len(content),
	}).Info("Calling OpenRouter API")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Log.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body_length": len(body),
		}).Warn("OpenRouter API returned non-OK status")
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	reply := chatResp.Choices[0].Message.Content
	logger.Log.WithField("reply_chars", len(reply)).Debug("Extracted content from response")
	return reply, nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultGroqBaseURL is Groq's OpenAI-compatible API root.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// APIError is a non-2xx response from a chat completions endpoint.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("groq API error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("groq API error (HTTP %d)", e.Status)
}

// GroqClient implements Client against Groq's chat completions API.
type GroqClient struct {
	baseURL string
	apiKey  string
	config  *Config
	http    *http.Client
}

// NewGroqClient creates a Groq client. The key comes from GROQ_API_KEY; there is no default.
func NewGroqClient(config *Config, apiKey string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGroqConfig()
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	return &GroqClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		config:  config,
		http:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent implements Client.
func (c *GroqClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	return c.complete(ctx, req, false)
}

// GenerateJSON implements Client. The request sets response_format json_object.
func (c *GroqClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	text, err := c.complete(ctx, req, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *GroqClient) complete(ctx context.Context, req Request, jsonMode bool) (string, error) {
	model := c.config.GetModel(req.Tier)
	if model == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	body := chatRequest{
		Model:       model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.Prompt})
	if jsonMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(data, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil && parsed.Error != nil {
			apiErr.Message = parsed.Error.Message
		}
		return "", apiErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content in response")
	}
	return parsed.Choices[0].Message.Content, nil
}

// GetModel implements Client.
func (c *GroqClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close implements Client.
func (c *GroqClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

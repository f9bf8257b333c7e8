package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Client wraps the Anthropic API client
type Client struct {
	client  *anthropic.Client
	model   string
	timeout time.Duration
}

// NewClient creates a new AI client
func NewClient(model string, apiToken string, timeoutSeconds int) (*Client, error) {
	// Resolve API token: parameter > environment variable
	token := apiToken
	if token == "" {
		token = os.Getenv("ANTHROPIC_API_KEY")
	}
	if token == "" {
		return nil, errors.New("no API token provided: set --ai-token flag or ANTHROPIC_API_KEY environment variable")
	}

	client := anthropic.NewClient(option.WithAPIKey(token))

	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:  client,
		model:   mapModelName(model),
		timeout: timeout,
	}, nil
}

// mapModelName converts friendly model names to model IDs
func mapModelName(name string) string {
	switch strings.ToLower(name) {
	case "haiku":
		return "claude-3-5-haiku-latest"
	case "sonnet":
		return "claude-sonnet-4-20250514"
	case "opus":
		return "claude-opus-4-20250514"
	default:
		// Default to sonnet if unknown
		return "claude-sonnet-4-20250514"
	}
}

// Comment sends a summary prompt and parses the commentary
func (c *Client) Comment(ctx context.Context, userPrompt string) (*Commentary, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(c.model),
		MaxTokens: anthropic.F(int64(1024)),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(SummarySystemPrompt),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}

	responseText := extractTextContent(message)
	if responseText == "" {
		return nil, errors.New("empty response from API")
	}

	commentary, err := parseCommentary(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	commentary.Model = c.model
	commentary.TokensUsed = int(message.Usage.InputTokens + message.Usage.OutputTokens)

	return commentary, nil
}

// extractTextContent extracts text from the message response
func extractTextContent(message *anthropic.Message) string {
	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			text.WriteString(block.Text)
		}
	}
	return text.String()
}

// parseCommentary parses the JSON answer. A reply that is not JSON is kept
// as the summary so the text is not lost.
func parseCommentary(text string) (*Commentary, error) {
	cleaned := extractJSON(text)
	if !strings.HasPrefix(cleaned, "{") {
		return &Commentary{Summary: strings.TrimSpace(text)}, nil
	}

	var raw struct {
		Summary         string   `json:"summary"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, err
	}
	if raw.Summary == "" && len(raw.Recommendations) == 0 {
		return nil, errors.New("response has neither summary nor recommendations")
	}

	return &Commentary{
		Summary:         raw.Summary,
		Recommendations: raw.Recommendations,
	}, nil
}

// extractJSON extracts JSON from text that might contain markdown code blocks
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	// Try to extract from code blocks
	if strings.Contains(text, "```") {
		start := strings.Index(text, "```json")
		if start == -1 {
			start = strings.Index(text, "```")
		}
		if start != -1 {
			// Find the end of the opening marker
			contentStart := strings.Index(text[start:], "\n")
			if contentStart != -1 {
				start = start + contentStart + 1
			}
		}

		end := strings.LastIndex(text, "```")
		if start != -1 && end > start {
			text = text[start:end]
		}
	}

	// Try to find JSON object boundaries
	text = strings.TrimSpace(text)
	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")

	if jsonStart != -1 && jsonEnd > jsonStart {
		text = text[jsonStart : jsonEnd+1]
	}

	return strings.TrimSpace(text)
}

// GetModel returns the current model being used
func (c *Client) GetModel() string {
	return c.model
}

// Package llm asks a language model for short tracing hints.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	anthropicAPIURL = "https://api.anthropic.com/v1/messages"
	defaultModel    = "claude-sonnet-4-20250514"
)

// Client is an Anthropic API client.
type Client struct {
	apiKey     string
	httpClient *http.Client
	model      string
	url        string
}

// HintRequest describes the letter a child is stuck on.
type HintRequest struct {
	Letter        rune
	Pronunciation string
	Example       string // example word, may be empty
	Language      string // language name for the reply, e.g. "Français"
	Attempts      int    // failed attempts so far
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new Anthropic client.
// It reads the API key from the ANTHROPIC_API_KEY environment variable.
func NewClient() (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}
	return newClient(apiKey, anthropicAPIURL), nil
}

func newClient(apiKey, url string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		model:      defaultModel,
		url:        url,
	}
}

// LetterHint returns one or two child-friendly sentences on how to trace the
// letter.
func (c *Client) LetterHint(ctx context.Context, h HintRequest) (string, error) {
	req := request{
		Model:     c.model,
		MaxTokens: 150,
		Messages:  []message{{Role: "user", Content: buildPrompt(h)}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshaling response (status %d): %w", resp.StatusCode, err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return strings.TrimSpace(apiResp.Content[0].Text), nil
}

func buildPrompt(h HintRequest) string {
	var sb strings.Builder

	sb.WriteString("A young child is learning to trace capital letters with a mouse or finger.\n\n")
	fmt.Fprintf(&sb, "Letter: %c\n", h.Letter)
	if h.Pronunciation != "" {
		fmt.Fprintf(&sb, "Pronounced: %s\n", h.Pronunciation)
	}
	if h.Example != "" {
		fmt.Fprintf(&sb, "Example word: %s\n", h.Example)
	}
	if h.Attempts > 0 {
		fmt.Fprintf(&sb, "Failed attempts so far: %d\n", h.Attempts)
	}

	sb.WriteString("\nGive one encouraging hint describing the strokes needed to draw this letter in a single continuous line")
	sb.WriteString(", for example where to start and which way to go.")
	if h.Language != "" {
		fmt.Fprintf(&sb, " Answer in %s.", h.Language)
	}
	sb.WriteString(" Use simple words. Output at most two short sentences and nothing else.")

	return sb.String()
}

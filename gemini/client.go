// Package gemini streams completions from the Generative Language API.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/apex/log"
)

const maxEventSize = 1 << 20

// GenerationConfig is sent as generationConfig with every request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// Chunk is one item of a completion stream: a text fragment or the error
// that ended the stream. The channel is closed after the last chunk.
type Chunk struct {
	Text string
	Err  error
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client. The http.Client has no timeout: a stream lives
// as long as the provider keeps sending and the caller's context allows.
func NewClient(apiKey, model, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type streamResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *apiError `json:"error"`
}

// StreamGenerate starts a single-turn generation for prompt. Connection and
// HTTP status failures are returned directly; failures after the stream has
// opened arrive as the final Chunk. Cancelling ctx aborts the upstream request
// and closes the channel without an error chunk.
func (c *Client) StreamGenerate(ctx context.Context, prompt string, gen GenerationConfig) (<-chan Chunk, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: gen,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}

	log.WithField("model", c.model).Debug("Generation stream opened")

	ch := make(chan Chunk)
	go c.pump(ctx, resp.Body, ch)
	return ch, nil
}

func (c *Client) pump(ctx context.Context, body io.ReadCloser, ch chan<- Chunk) {
	defer close(ch)
	defer body.Close()

	send := func(chunk Chunk) bool {
		select {
		case ch <- chunk:
			return true
		case <-ctx.Done():
			return false
		}
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		text, err := parseEvent(data)
		if err != nil {
			send(Chunk{Err: err})
			return
		}
		if text == "" {
			continue
		}
		if !send(Chunk{Text: text}) {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return
		}
		send(Chunk{Err: fmt.Errorf("stream read failed: %w", err)})
	}
}

// parseEvent returns the text carried by one stream event.
func parseEvent(data string) (string, error) {
	var event streamResponse
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return "", fmt.Errorf("malformed stream event: %w", err)
	}
	if event.Error != nil {
		return "", fmt.Errorf("provider error %d %s: %s", event.Error.Code, event.Error.Status, event.Error.Message)
	}
	if event.PromptFeedback != nil && event.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", event.PromptFeedback.BlockReason)
	}

	// Only one candidate is requested.
	if len(event.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range event.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		return &StatusError{Code: resp.StatusCode, Message: envelope.Error.Message}
	}
	return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}

// StatusError is returned when the provider answers with a non-200 status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generative language API error: %d", e.Code)
	}
	return fmt.Sprintf("generative language API error: %d: %s", e.Code, e.Message)
}

// Package ollama is a minimal client for a local Ollama server's
// generation API.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrBackendUnavailable means the server could not be reached at all.
	ErrBackendUnavailable = errors.New("ollama backend unavailable")
	// ErrBackendProtocol means the server answered with something we
	// could not interpret (non-2xx status, malformed body).
	ErrBackendProtocol = errors.New("ollama protocol error")
)

// Params are the per-request sampling settings.
type Params struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
}

type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends prompt to /api/generate and returns the full reply
// text. The server may answer with a single JSON object or with
// newline-delimited JSON chunks even when streaming was not requested;
// both shapes are handled.
func (c *Client) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:       p.Model,
		Prompt:      prompt,
		Temperature: p.Temperature,
		TopP:        p.TopP,
		MaxTokens:   p.MaxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrBackendProtocol, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return readReply(resp.Body)
}

// readReply concatenates the response fields of every JSON chunk in the
// body until a chunk reports done, covering both the single-object and
// the NDJSON reply shapes.
func readReply(r io.Reader) (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sawChunk := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var chunk generateChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			return "", fmt.Errorf("%w: bad chunk: %v", ErrBackendProtocol, err)
		}
		sawChunk = true
		sb.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrBackendProtocol, err)
	}
	if !sawChunk {
		return "", fmt.Errorf("%w: empty reply", ErrBackendProtocol)
	}
	return sb.String(), nil
}

// Health checks that the server is reachable by listing installed
// models.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrBackendProtocol, resp.StatusCode)
	}
	return nil
}

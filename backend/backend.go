package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gemini-relay/config"
	"gemini-relay/logging"
)

const (
	// NoResponse is returned when Gemini answers successfully but without any text.
	NoResponse = "No response from Gemini."

	apiKeyHeader    = "x-goog-api-key"
	maxResponseSize = 10 << 20
	maxErrorBody    = 512
)

var log = logging.GetLogger()

// Client represents a client to communicate with the Gemini generateContent API.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewBackendClient creates a new Client for the configured API root and model.
func NewBackendClient(cfg *config.Config) *Client {
	return &Client{
		endpoint: fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(cfg.APIRoot, "/"), cfg.Model),
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// Generate sends prompt to Gemini in a single attempt and returns the first
// candidate's text, or NoResponse when the answer carries none.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", &UpstreamError{Cause: fmt.Errorf("encode gemini request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &UpstreamError{Cause: fmt.Errorf("build gemini request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("read response: %w", err)}
	}
	log.Debugf("Gemini answered %d in %s (%d bytes)", resp.StatusCode, time.Since(start), len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("decode response: %w", err)}
	}

	text := decoded.firstText()
	if text == "" {
		log.Warnln("Gemini response carried no candidate text")
		return NoResponse, nil
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

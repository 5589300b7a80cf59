package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/foxseedlab/runebot/internal/apperr"
	"github.com/foxseedlab/runebot/internal/generation"
)

const maxErrorBody = 200

// CompletionEngine talks to a local OpenAI-compatible completion server such as
// the GPT4All or llama.cpp API server hosting the configured model file.
type CompletionEngine struct {
	endpoint string
	model    string
	client   *http.Client
}

func NewCompletionEngine(endpoint, model string) generation.Engine {
	return &CompletionEngine{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		client:   &http.Client{},
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

func (e *CompletionEngine) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	b, err := json.Marshal(completionRequest{
		Model:       e.model,
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: completion request: %v", apperr.ErrExternal, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read completion body: %v", apperr.ErrExternal, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: completion server http %d: %s", apperr.ErrExternal, resp.StatusCode, truncate(body))
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed completion response: %v", apperr.ErrExternal, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: completion server returned no choices", apperr.ErrExternal)
	}
	return parsed.Choices[0].Text, nil
}

func truncate(b []byte) string {
	s := string(b)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutrisense/entities"
)

const (
	temperature    = 0.3
	maxTokens      = 600
	maxPromptBytes = 10000

	maxAttempts    = 3
	retryDelay     = 1 * time.Second
	attemptTimeout = 30 * time.Second
)

// openAI talks to any OpenAI-compatible chat-completions endpoint (Groq in
// the default deployment).
type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client

	attempts int
	delay    time.Duration
	timeout  time.Duration
}

func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{
		endpoint: endpoint,
		key:      key,
		model:    model,
		httpc:    &http.Client{},
		attempts: maxAttempts,
		delay:    retryDelay,
		timeout:  attemptTimeout,
	}
}

func (c *openAI) Configured() bool { return c.key != "" }

func (c *openAI) ModelUsed(override string) string {
	if override != "" {
		return override
	}
	return c.model
}

func (c *openAI) Recommend(ctx context.Context, soil entities.SoilData, task RecommendationType, location, model string) (string, error) {
	if c.key == "" {
		return "", ErrNotConfigured
	}

	prompt := renderPrompt(soil, task, location)
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("empty prompt")
	}
	if len(prompt) > maxPromptBytes {
		return "", fmt.Errorf("prompt too long (%d bytes)", len(prompt))
	}

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		content, err := c.complete(ctx, prompt, c.ModelUsed(model))
		if err == nil {
			return content, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, c.attempts, lastErr)
}

func (c *openAI) complete(ctx context.Context, prompt, model string) (string, error) {
	reqBody := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": temperature,
		"max_tokens":  maxTokens,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := strings.TrimRight(c.endpoint, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion content")
	}
	return content, nil
}

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"repair-assistant/internal/llm"
	"repair-assistant/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: key,
		Model:  model,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g., for custom timeouts
// or a test server).
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

// BaseURL is a var so tests can point the engine at an httptest server.
var BaseURL = "https://api.openai.com/v1"

func (e *Engine) Name() string { return "gpt" }

func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Complete(ctx context.Context, cr llm.ChatRequest) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is empty")
	}

	content := make([]any, 0, len(cr.Blocks))
	for _, b := range cr.Blocks {
		switch {
		case b.Text != "":
			content = append(content, map[string]any{"type": "text", "text": b.Text})
		case b.ImageB64 != "":
			mime := b.ImageMIME
			if mime == "" {
				mime = "image/jpeg"
			}
			dataURL := util.MakeDataURL(mime, b.ImageB64)
			content = append(content, map[string]any{
				"type":      "image_url",
				"image_url": map[string]any{"url": dataURL, "detail": "high"},
			})
		case b.ImageURL != "":
			content = append(content, map[string]any{
				"type":      "image_url",
				"image_url": map[string]any{"url": b.ImageURL, "detail": "high"},
			})
		}
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": cr.System},
			map[string]any{"role": "user", "content": content},
		},
		"temperature":     0,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", BaseURL+"/chat/completions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai chat %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("openai chat: empty response")
	}
	return strings.TrimSpace(raw.Choices[0].Message.Content), nil
}

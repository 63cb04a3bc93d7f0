package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"repair-assistant/internal/llm"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
		httpc:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Complete(ctx context.Context, cr llm.ChatRequest) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(e.Model))
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(cr.System)},
	}

	parts := make([]genai.Part, 0, len(cr.Blocks))
	for _, b := range cr.Blocks {
		switch {
		case b.Text != "":
			parts = append(parts, genai.Text(b.Text))
		case b.ImageB64 != "":
			data, err := base64.StdEncoding.DecodeString(b.ImageB64)
			if err != nil {
				return "", fmt.Errorf("gemini: bad image base64: %w", err)
			}
			mime := b.ImageMIME
			if mime == "" {
				mime = "image/jpeg"
			}
			parts = append(parts, &genai.Blob{MIMEType: mime, Data: data})
		case b.ImageURL != "":
			// The SDK takes raw bytes only; remote images are pulled in here.
			// A fetch failure drops the block, it does not fail the request.
			data, mime, err := e.fetchImage(ctx, b.ImageURL)
			if err != nil {
				log.Printf("gemini: image fetch failed, block dropped: %v", err)
				continue
			}
			parts = append(parts, &genai.Blob{MIMEType: mime, Data: data})
		}
	}

	// Dispatched exactly once; a transport failure is the caller's to surface.
	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return strings.TrimSpace(txt), nil
}

func (e *Engine) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch %d: %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return data, mime, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }

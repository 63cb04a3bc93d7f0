package llm

import (
	"context"
	"errors"
	"strings"
)

// ContentBlock is one item of a user message. Exactly one of Text, ImageURL
// or ImageB64 is set; ImageMIME accompanies ImageB64.
type ContentBlock struct {
	Text      string
	ImageURL  string
	ImageB64  string
	ImageMIME string
}

// ChatRequest is one multimodal completion request: a system instruction plus
// an ordered sequence of user content blocks. It is sent exactly once.
type ChatRequest struct {
	System string
	Blocks []ContentBlock
}

type Engine interface {
	Name() string
	GetModel() string
	// Complete sends the request and returns the raw model text.
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

type Engines struct {
	OpenAI  Engine
	Gemini  Engine
	Default string
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	name := strings.TrimSpace(llmName)
	if name == "" {
		name = e.Default
	}
	switch name {
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, errors.New("openai engine is not configured")
		}
		return e.OpenAI, nil
	case "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine is not configured")
		}
		return e.Gemini, nil
	default:
		return nil, errors.New("unknown llm_name; use 'gpt' or 'gemini'")
	}
}

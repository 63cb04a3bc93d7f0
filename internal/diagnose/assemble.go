package diagnose

import (
	"repair-assistant/internal/llm"
	"repair-assistant/internal/media"
)

const systemPrompt = "You are a home-repair diagnostician. Read the user's report and return a concise, practical diagnosis in strict JSON only."

const keysInstruction = "Return JSON with keys: problem_name (string), likely_causes (string[]), diy_steps (string[]), caution_notes (string[]), need_professional (boolean), confidence (number 0..1). No extra text."

// Assemble builds the single multimodal request: user text first, then the
// still image (inline wins over URL), then the key-list instruction, then one
// image-only block per sampled frame. Frames are evidence, not prose — they
// carry no accompanying text.
func Assemble(in Input, frames []media.Frame) llm.ChatRequest {
	blocks := make([]llm.ContentBlock, 0, 2+len(frames))

	if in.Text != "" {
		blocks = append(blocks, llm.ContentBlock{Text: "User report:\n" + in.Text})
	}
	if in.ImageB64 != "" {
		blocks = append(blocks, llm.ContentBlock{ImageB64: in.ImageB64, ImageMIME: in.ImageMIME})
	} else if in.ImageURL != "" {
		blocks = append(blocks, llm.ContentBlock{ImageURL: in.ImageURL})
	}
	blocks = append(blocks, llm.ContentBlock{Text: keysInstruction})

	for _, f := range frames {
		blocks = append(blocks, llm.ContentBlock{ImageB64: f.B64, ImageMIME: f.MIME})
	}

	return llm.ChatRequest{System: systemPrompt, Blocks: blocks}
}

package main

import (
	"log"
	"net/http"

	"repair-assistant/internal/config"
	"repair-assistant/internal/diagnose"
	"repair-assistant/internal/handle"
	"repair-assistant/internal/llm"
	"repair-assistant/internal/llm/gemini"
	"repair-assistant/internal/llm/openai"
	"repair-assistant/internal/media"
)

func main() {
	cfg := config.Load()

	engines := &llm.Engines{
		OpenAI:  openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		Default: cfg.DefaultLLM,
	}
	if cfg.GeminiAPIKey != "" {
		engines.Gemini = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	sampler := media.NewSampler(
		media.SamplerConfig{FPS: cfg.FrameFPS, MaxFrames: cfg.FrameMax},
		media.NewFFmpegExtractor(cfg.FFmpegBin),
	)

	h := handle.New(diagnose.NewService(engines, sampler))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/diagnose", h.Diagnose)

	addr := ":" + cfg.Port
	log.Printf("diagnose-proxy listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

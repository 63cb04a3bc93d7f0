package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	// Engine used when the request does not name one.
	DefaultLLM string `yaml:"default_llm"`

	FFmpegBin string `yaml:"ffmpeg_bin"`
	FrameFPS  int    `yaml:"frame_fps"`
	FrameMax  int    `yaml:"frame_max"`
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// Load builds the config from the environment. When CONFIG_FILE points at a
// YAML file, its values are read first and the environment overrides them.
func Load() *Config {
	cfg := &Config{
		Port:        "8000",
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.5-flash",
		DefaultLLM:  "gpt",
		FFmpegBin:   "ffmpeg",
		FrameFPS:    1,
		FrameMax:    12,
	}

	if p := os.Getenv("CONFIG_FILE"); p != "" {
		if err := cfg.mergeFile(p); err != nil {
			log.Fatalf("config file %s: %v", p, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.OpenAIModel = getEnv("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.DefaultLLM = getEnv("LLM_DEFAULT", cfg.DefaultLLM)
	cfg.FFmpegBin = getEnv("FFMPEG_BIN", cfg.FFmpegBin)
	cfg.FrameFPS = getEnvInt("FRAME_FPS", cfg.FrameFPS)
	cfg.FrameMax = getEnvInt("FRAME_MAX", cfg.FrameMax)

	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = mustEnv("OPENAI_API_KEY")
	} else {
		cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	}
	// Gemini is optional; the engine is disabled when the key is empty.
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)

	return cfg
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	if file.Port != "" {
		c.Port = file.Port
	}
	if file.OpenAIAPIKey != "" {
		c.OpenAIAPIKey = file.OpenAIAPIKey
	}
	if file.OpenAIModel != "" {
		c.OpenAIModel = file.OpenAIModel
	}
	if file.GeminiAPIKey != "" {
		c.GeminiAPIKey = file.GeminiAPIKey
	}
	if file.GeminiModel != "" {
		c.GeminiModel = file.GeminiModel
	}
	if file.DefaultLLM != "" {
		c.DefaultLLM = file.DefaultLLM
	}
	if file.FFmpegBin != "" {
		c.FFmpegBin = file.FFmpegBin
	}
	if file.FrameFPS > 0 {
		c.FrameFPS = file.FrameFPS
	}
	if file.FrameMax > 0 {
		c.FrameMax = file.FrameMax
	}
	return nil
}

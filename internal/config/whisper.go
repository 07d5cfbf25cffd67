package config

import (
	"os"
	"sync"
)

type WhisperConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

var (
	whisperConfig *WhisperConfig
	whisperOnce   sync.Once
)

func LoadWhisperConfig() *WhisperConfig {
	whisperOnce.Do(func() {
		baseURL := os.Getenv("WHISPER_BASE_URL")
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		model := os.Getenv("WHISPER_MODEL")
		if model == "" {
			model = "whisper-1"
		}
		whisperConfig = &WhisperConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: baseURL,
			Model:   model,
		}
	})
	return whisperConfig
}

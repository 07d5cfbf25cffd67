package config

import (
	"os"
	"strings"
	"sync"
)

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	// Models is the candidate list in priority order. The evaluation client
	// walks it sequentially and stops at the first model that returns a
	// structurally valid assessment.
	Models []string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

var defaultModels = []string{
	"openai/gpt-4o-mini",
	"anthropic/claude-3.5-haiku",
	"meta-llama/llama-3.1-70b-instruct",
}

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		baseURL := os.Getenv("OPENROUTER_BASE_URL")
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1"
		}

		models := defaultModels
		if raw := os.Getenv("OPENROUTER_MODELS"); raw != "" {
			models = nil
			for _, m := range strings.Split(raw, ",") {
				if m = strings.TrimSpace(m); m != "" {
					models = append(models, m)
				}
			}
		}

		openRouterConfig = &OpenRouterConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			BaseURL: baseURL,
			Models:  models,
		}
	})
	return openRouterConfig
}

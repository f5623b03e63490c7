package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type OpenRouterConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	RequestTimeout time.Duration
	MaxTokens      int
	MaxConcurrency int
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		baseURL := os.Getenv("OPENROUTER_BASE_URL")
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1/chat/completions"
		}
		model := os.Getenv("OPENROUTER_MODEL")
		if model == "" {
			model = "deepseek/deepseek-chat-v3.1:free"
		}
		timeout := 30 * time.Second
		if raw := os.Getenv("OPENROUTER_TIMEOUT_SECONDS"); raw != "" {
			if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
				timeout = time.Duration(secs) * time.Second
			}
		}
		concurrency := 5
		if raw := os.Getenv("OPENROUTER_MAX_CONCURRENCY"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				concurrency = n
			}
		}
		openRouterConfig = &OpenRouterConfig{
			APIKey:         os.Getenv("OPENROUTER_API_KEY"),
			BaseURL:        baseURL,
			Model:          model,
			RequestTimeout: timeout,
			MaxTokens:      2000,
			MaxConcurrency: concurrency,
		}
	})
	return openRouterConfig
}

package services

import (
	"context"
	"fmt"
	"log"

	"alfredoptarigan/resumesync/internal/config"
)

// Completer sends one prompt to a text-completion service and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// NewCompleter creates the completion client selected by AI_PROVIDER.
// A missing credential does not prevent startup; every analysis then fails with a
// ConfigurationError before any request is sent.
func NewCompleter(cfg *config.Config) (Completer, error) {
	if cfg.APIKey() == "" {
		log.Printf("⚠️  %s is not set, analyses will fail until it is configured", cfg.APIKeyName())
		return &unconfiguredCompleter{key: cfg.APIKeyName()}, nil
	}

	switch cfg.AI.Provider {
	case config.ProviderGemini:
		log.Printf("🤖 Using Gemini model %s", cfg.Gemini.Model)
		return NewGeminiService(cfg.Gemini, cfg.AI.RequestTimeout)
	case config.ProviderOpenAI:
		log.Printf("🤖 Using OpenAI-compatible model %s", cfg.OpenAI.Model)
		return NewOpenAIService(cfg.OpenAI, cfg.AI.RequestTimeout), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.AI.Provider)
	}
}

type unconfiguredCompleter struct {
	key string
}

// Complete implements Completer.
func (u *unconfiguredCompleter) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	return "", &ConfigurationError{Key: u.key}
}

// Package llm wraps the generative-text vendors that produce scan verdicts.
package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/config"
)

// Provider is a text-generation backend. Generate returns the raw model
// reply; callers own parsing and validation of it.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Source() string
	Configured() bool
}

// New builds the provider named by the configuration.
func New(cfg *config.Config, logger *logrus.Logger) (Provider, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.LLM.Timeout, logger), nil
	case "openai":
		return NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.LLM.Timeout, logger), nil
	case "stub":
		return NewStub(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
}

package agent

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/aguxez/carnitarget/config"
)

// NewOpenRouterLLM builds an OpenAI-compatible client for the configured
// endpoint.
func NewOpenRouterLLM(cfg config.LLMConfig) (*openai.LLM, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating llm client: %w", err)
	}
	return llm, nil
}

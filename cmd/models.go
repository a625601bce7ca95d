package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prashantgupta17/evaltemplates/config"
	"github.com/prashantgupta17/evaltemplates/langchain"
	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/openai"
	"github.com/prashantgupta17/evaltemplates/tokens"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// newModel builds the model named by model.name.
func newModel(s *config.Settings, logger *zap.Logger) (llm.Model, error) {
	name := s.Model.Name
	provider, modelID, ok := strings.Cut(name, "/")
	if !ok || modelID == "" {
		return nil, fmt.Errorf("unsupported model name %q: use provider/model, e.g. openai/gpt-4o-mini", name)
	}

	if _, err := llm.PromptBudget(s.Model.MaxContextTokens, s.Model.MaxTokens); err != nil {
		return nil, err
	}

	var counter *tokens.Counter
	if s.Model.MaxContextTokens > 0 {
		c, err := tokens.NewCounter(modelID)
		if err != nil {
			return nil, err
		}
		counter = c
	}

	lcOptions := []langchain.Option{
		langchain.WithTemperature(s.Model.Temperature),
		langchain.WithMaxTokens(s.Model.MaxTokens),
		langchain.WithLogger(logger),
	}
	if counter != nil {
		lcOptions = append(lcOptions, langchain.WithMaxContextTokens(s.Model.MaxContextTokens, counter))
	}

	switch provider {
	case "openai":
		client, err := openai.NewOpenAIClient(openai.Config{
			APIKey:           s.OpenAI.APIKey,
			BaseURL:          s.OpenAI.BaseURL,
			Model:            modelID,
			Temperature:      float32(s.Model.Temperature),
			MaxTokens:        s.Model.MaxTokens,
			MaxContextTokens: s.Model.MaxContextTokens,
		}, counter, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "anthropic":
		if s.Anthropic.APIKey == "" {
			return nil, errors.New("Anthropic API key not set (anthropic.api_key or ANTHROPIC_API_KEY)")
		}
		m, err := anthropic.New(anthropic.WithToken(s.Anthropic.APIKey), anthropic.WithModel(modelID))
		if err != nil {
			return nil, fmt.Errorf("error initializing Anthropic model %s: %w", modelID, err)
		}
		return langchain.NewLangChainClient(name, m, append(lcOptions, langchain.WithFunctionCalling(true))...), nil
	case "ollama":
		m, err := ollama.New(ollama.WithModel(modelID), ollama.WithServerURL(s.Ollama.URL))
		if err != nil {
			return nil, fmt.Errorf("error initializing Ollama model %s: %w", modelID, err)
		}
		return langchain.NewLangChainClient(name, m, lcOptions...), nil
	default:
		return nil, fmt.Errorf("unsupported model provider %q", provider)
	}
}

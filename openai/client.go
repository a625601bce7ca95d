package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/tokens"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Config holds the settings for an OpenAI chat model.
type Config struct {
	APIKey           string
	BaseURL          string
	Model            string
	Temperature      float32
	MaxTokens        int
	MaxContextTokens int
}

type OpenAIClient struct {
	client  *openai.Client
	config  Config
	counter *tokens.Counter
	logger  *zap.Logger
}

// NewOpenAIClient creates a client. The API key falls back to OPENAI_API_KEY.
// counter may be nil when no truncation is wanted.
func NewOpenAIClient(cfg Config, counter *tokens.Counter, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key not set (openai.api_key or OPENAI_API_KEY)")
	}
	if _, err := llm.PromptBudget(cfg.MaxContextTokens, cfg.MaxTokens); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		counter: counter,
		logger:  logger,
	}, nil
}

// Name implements llm.Model.
func (c *OpenAIClient) Name() string {
	return "openai/" + c.config.Model
}

// SupportsFunctionCalling implements llm.Model. Chat models all accept tools.
func (c *OpenAIClient) SupportsFunctionCalling() bool {
	return true
}

// Complete sends one chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	prompt := req.Prompt
	if c.counter != nil && c.config.MaxContextTokens > 0 {
		budget, err := llm.PromptBudget(c.config.MaxContextTokens, c.config.MaxTokens)
		if err != nil {
			return llm.Response{}, err
		}
		prompt = c.counter.Truncate(prompt, budget)
	}

	var messages []openai.ChatCompletionMessage
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	chatReq := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}
	if req.Function != nil {
		chatReq.Tools = []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        req.Function.Name,
				Description: req.Function.Description,
				Parameters:  req.Function.Parameters,
			},
		}}
		chatReq.ToolChoice = openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: req.Function.Name},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return llm.Response{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return llm.Response{}, llm.ErrEmptyResponse
	}

	message := resp.Choices[0].Message
	out := llm.Response{Text: message.Content}
	for _, call := range message.ToolCalls {
		if req.Function != nil && call.Function.Name == req.Function.Name {
			out.FunctionArguments = call.Function.Arguments
			break
		}
	}

	c.logger.Debug("openai completion",
		zap.String("model", c.config.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return out, nil
}

var _ llm.Model = (*OpenAIClient)(nil)

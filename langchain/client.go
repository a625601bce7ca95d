package langchain

import (
	"context"
	"errors"
	"fmt"

	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/tokens"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LangChainClient implements the llm.Model interface using LangChainGo.
type LangChainClient struct {
	llmModel         llms.Model // Generic LangChainGo LLM model
	name             string
	temperature      float64
	maxTokens        int
	maxContextTokens int
	functionCalling  bool
	counter          *tokens.Counter
	logger           *zap.Logger
}

// Option configures a LangChainClient.
type Option func(*LangChainClient)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *LangChainClient) { c.temperature = t }
}

// WithMaxTokens caps the length of each answer.
func WithMaxTokens(n int) Option {
	return func(c *LangChainClient) { c.maxTokens = n }
}

// WithMaxContextTokens truncates prompts so prompt plus answer fit in n tokens.
func WithMaxContextTokens(n int, counter *tokens.Counter) Option {
	return func(c *LangChainClient) {
		c.maxContextTokens = n
		c.counter = counter
	}
}

// WithFunctionCalling marks the wrapped model as able to call tools.
func WithFunctionCalling(enabled bool) Option {
	return func(c *LangChainClient) { c.functionCalling = enabled }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *LangChainClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewLangChainClient creates a new LangChainClient.
// The specific model (e.g., Anthropic, Ollama) should be initialized and passed here.
func NewLangChainClient(name string, model llms.Model, opts ...Option) *LangChainClient {
	c := &LangChainClient{
		llmModel: model,
		name:     name,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements llm.Model.
func (c *LangChainClient) Name() string {
	return c.name
}

// SupportsFunctionCalling implements llm.Model.
func (c *LangChainClient) SupportsFunctionCalling() bool {
	return c.functionCalling
}

// Complete sends the system instruction and prompt as separate messages.
func (c *LangChainClient) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	if c.llmModel == nil {
		return llm.Response{}, errors.New("LangChain LLM model is not initialized")
	}

	prompt := req.Prompt
	if c.maxContextTokens > 0 && c.counter != nil {
		budget, err := llm.PromptBudget(c.maxContextTokens, c.maxTokens)
		if err != nil {
			return llm.Response{}, err
		}
		prompt = c.counter.Truncate(prompt, budget)
	}

	var messages []llms.MessageContent
	if req.SystemInstruction != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.SystemInstruction))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	options := []llms.CallOption{llms.WithTemperature(c.temperature)}
	if c.maxTokens > 0 {
		options = append(options, llms.WithMaxTokens(c.maxTokens))
	}
	if req.Function != nil && c.functionCalling {
		options = append(options, llms.WithTools([]llms.Tool{toolFor(req.Function)}))
	}

	contentResponse, err := c.llmModel.GenerateContent(ctx, messages, options...)
	if err != nil {
		return llm.Response{}, fmt.Errorf("LangChain LLM GenerateContent call failed: %w", err)
	}

	if len(contentResponse.Choices) == 0 {
		return llm.Response{}, llm.ErrEmptyResponse
	}

	choice := contentResponse.Choices[0]
	resp := llm.Response{Text: choice.Content}
	for _, call := range choice.ToolCalls {
		if call.FunctionCall != nil && req.Function != nil && call.FunctionCall.Name == req.Function.Name {
			resp.FunctionArguments = call.FunctionCall.Arguments
			break
		}
	}

	c.logger.Debug("langchain completion",
		zap.String("model", c.name),
		zap.Int("prompt_chars", len(prompt)),
		zap.Bool("function_call", resp.FunctionArguments != ""))

	return resp, nil
}

// Ensure LangChainClient implements the llm.Model interface.
var _ llm.Model = (*LangChainClient)(nil)

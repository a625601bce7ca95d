package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when a provider answers without any choices.
var ErrEmptyResponse = errors.New("LLM returned no choices")

// ErrNoPromptBudget is returned when max context tokens leave no room for the prompt
// once max tokens are reserved for the answer.
var ErrNoPromptBudget = errors.New("max context tokens must be greater than max tokens")

// PromptBudget returns the number of tokens left for the prompt, or 0 when maxContextTokens
// is not set.
func PromptBudget(maxContextTokens, maxTokens int) (int, error) {
	if maxContextTokens <= 0 {
		return 0, nil
	}
	budget := maxContextTokens - maxTokens
	if budget <= 0 {
		return 0, fmt.Errorf("%w: max_context_tokens=%d, max_tokens=%d", ErrNoPromptBudget, maxContextTokens, maxTokens)
	}
	return budget, nil
}

// FunctionDefinition describes a function the model is asked to call instead of answering in text.
// Parameters is a JSON schema object.
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request is a single completion request.
type Request struct {
	Prompt            string
	SystemInstruction string
	// Function, when set, asks the model to answer through a call to this function.
	Function *FunctionDefinition
}

// Response holds the model answer. FunctionArguments is the raw JSON of the first
// function call, if the model made one.
type Response struct {
	Text              string
	FunctionArguments string
}

// Model defines the interface evaluations use to talk to an LLM.
type Model interface {
	// Name identifies the model, e.g. "openai/gpt-4o-mini".
	Name() string

	// SupportsFunctionCalling reports whether Request.Function is honoured.
	SupportsFunctionCalling() bool

	// Complete sends one prompt and returns the answer.
	Complete(ctx context.Context, req Request) (Response, error)
}

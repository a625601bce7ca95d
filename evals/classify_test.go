package evals_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prashantgupta17/evaltemplates/dataset"
	"github.com/prashantgupta17/evaltemplates/evals"
	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockModel is a hand-written llm.Model for evaluation tests.
type mockModel struct {
	functions    bool
	CompleteFunc func(ctx context.Context, req llm.Request) (llm.Response, error)

	calls    atomic.Int32
	mu       sync.Mutex
	requests []llm.Request
}

func (m *mockModel) Name() string                  { return "mock/model" }
func (m *mockModel) SupportsFunctionCalling() bool { return m.functions }

func (m *mockModel) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return llm.Response{}, errors.New("CompleteFunc not implemented in mockModel")
}

var _ llm.Model = (*mockModel)(nil)

// answerByText answers with the value of the first key found in the prompt.
func answerByText(answers map[string]string) func(ctx context.Context, req llm.Request) (llm.Response, error) {
	return func(ctx context.Context, req llm.Request) (llm.Response, error) {
		for needle, answer := range answers {
			if strings.Contains(req.Prompt, needle) {
				return llm.Response{Text: answer}, nil
			}
		}
		return llm.Response{Text: "no idea"}, nil
	}
}

func toxicityDataset() *dataset.Dataset {
	return dataset.New(
		dataset.Record{"text": "you are wonderful"},
		dataset.Record{"text": "you are awful"},
		dataset.Record{"text": "who knows"},
		dataset.Record{"text": "mixed feelings"},
	)
}

func TestClassify_SnapsAnswersInRecordOrder(t *testing.T) {
	model := &mockModel{CompleteFunc: answerByText(map[string]string{
		"wonderful": "non-toxic",
		"awful":     "TOXIC",
		"mixed":     "toxic or non-toxic",
	})}

	results, err := evals.Classify(context.Background(), model, toxicityDataset(),
		templates.ToxicityPromptTemplateStr, templates.ToxicityPromptRailsMap.Rails(),
		evals.WithConcurrency(2))
	require.NoError(t, err)

	assert.Equal(t, []string{"non-toxic", "toxic", templates.NotParsable, templates.NotParsable}, evals.Labels(results))
	assert.EqualValues(t, 4, model.calls.Load())
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Empty(t, r.Explanation)
	}
}

func TestClassify_SystemInstruction(t *testing.T) {
	model := &mockModel{CompleteFunc: answerByText(map[string]string{"": "toxic"})}

	_, err := evals.Classify(context.Background(), model, toxicityDataset(),
		templates.NewPromptTemplate(templates.ToxicityPromptTemplateStr), templates.ToxicityPromptRailsMap.Rails(),
		evals.WithSystemInstruction("You are a moderator."))
	require.NoError(t, err)

	for _, req := range model.requests {
		assert.Equal(t, "You are a moderator.", req.SystemInstruction)
		assert.Nil(t, req.Function)
	}
}

func TestClassify_FunctionCalling(t *testing.T) {
	model := &mockModel{functions: true}
	model.CompleteFunc = func(ctx context.Context, req llm.Request) (llm.Response, error) {
		assert.NotNil(t, req.Function)
		args := map[string]string{"response": "Hallucinated", "explanation": "the answer invents a date"}
		raw, _ := json.Marshal(args)
		return llm.Response{FunctionArguments: string(raw)}, nil
	}

	ds := dataset.New(dataset.Record{"query": "q", "reference": "r", "response": "a"})
	results, err := evals.Classify(context.Background(), model, ds,
		templates.Builtin()[0], templates.HallucinationPromptRailsMap.Rails(),
		evals.WithExplanation(true))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hallucinated", results[0].Label)
	assert.Equal(t, "the answer invents a date", results[0].Explanation)

	fn := model.requests[0].Function
	assert.Equal(t, "record_response", fn.Name)
	props := fn.Parameters["properties"].(map[string]any)
	response := props["response"].(map[string]any)
	assert.Equal(t, []string{"factual", "hallucinated"}, response["enum"])
	assert.Contains(t, props, "explanation")
	assert.NotContains(t, model.requests[0].Prompt, "EXPLANATION")
}

func TestClassify_FunctionCallingDisabled(t *testing.T) {
	model := &mockModel{functions: true, CompleteFunc: answerByText(map[string]string{"": "factual"})}

	ds := dataset.New(dataset.Record{"query": "q", "reference": "r", "response": "a"})
	results, err := evals.Classify(context.Background(), model, ds,
		templates.HallucinationPromptTemplateStr, templates.HallucinationPromptRailsMap.Rails(),
		evals.WithFunctionCalling(false))
	require.NoError(t, err)
	assert.Equal(t, "factual", results[0].Label)
	assert.Nil(t, model.requests[0].Function)
}

func TestClassify_ExplanationFromText(t *testing.T) {
	model := &mockModel{CompleteFunc: func(ctx context.Context, req llm.Request) (llm.Response, error) {
		return llm.Response{Text: "EXPLANATION: The reference mentions the capital.\nLABEL: relevant"}, nil
	}}

	ds := dataset.New(dataset.Record{"query": "capital of France?", "reference": "Paris is the capital."})
	results, err := evals.Classify(context.Background(), model, ds,
		templates.RAGRelevancyPromptTemplateStr, templates.RAGRelevancyPromptRailsMap.Rails(),
		evals.WithExplanation(true))
	require.NoError(t, err)

	assert.Equal(t, "relevant", results[0].Label)
	assert.Equal(t, "The reference mentions the capital.", results[0].Explanation)
	assert.Contains(t, model.requests[0].Prompt, "EXPLANATION")
	assert.Contains(t, model.requests[0].Prompt, "relevant, irrelevant")
}

func TestClassify_ExplanationWithoutLabelMarker(t *testing.T) {
	model := &mockModel{CompleteFunc: answerByText(map[string]string{"": "irrelevant"})}

	ds := dataset.New(dataset.Record{"query": "q", "reference": "r"})
	results, err := evals.Classify(context.Background(), model, ds,
		templates.RAGRelevancyPromptTemplateStr, templates.RAGRelevancyPromptRailsMap.Rails(),
		evals.WithExplanation(true))
	require.NoError(t, err)
	assert.Equal(t, "irrelevant", results[0].Label)
	assert.Empty(t, results[0].Explanation)
}

func TestClassify_Retries(t *testing.T) {
	model := &mockModel{}
	model.CompleteFunc = func(ctx context.Context, req llm.Request) (llm.Response, error) {
		if model.calls.Load() < 3 {
			return llm.Response{}, errors.New("rate limited")
		}
		return llm.Response{Text: "toxic"}, nil
	}

	ds := dataset.New(dataset.Record{"text": "t"})
	results, err := evals.Classify(context.Background(), model, ds,
		templates.ToxicityPromptTemplateStr, templates.ToxicityPromptRailsMap.Rails(),
		evals.WithMaxRetries(3), evals.WithRetryBackoff(0))
	require.NoError(t, err)
	assert.Equal(t, "toxic", results[0].Label)
	assert.EqualValues(t, 3, model.calls.Load())
}

func TestClassify_ErrorAbortsByDefault(t *testing.T) {
	model := &mockModel{CompleteFunc: func(ctx context.Context, req llm.Request) (llm.Response, error) {
		return llm.Response{}, errors.New("boom")
	}}

	results, err := evals.Classify(context.Background(), model, toxicityDataset(),
		templates.ToxicityPromptTemplateStr, templates.ToxicityPromptRailsMap.Rails(),
		evals.WithMaxRetries(0), evals.WithConcurrency(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Nil(t, results)
}

func TestClassify_ContinueOnError(t *testing.T) {
	model := &mockModel{CompleteFunc: func(ctx context.Context, req llm.Request) (llm.Response, error) {
		if strings.Contains(req.Prompt, "awful") {
			return llm.Response{}, errors.New("content filtered")
		}
		return llm.Response{Text: "non-toxic"}, nil
	}}

	results, err := evals.Classify(context.Background(), model, toxicityDataset(),
		templates.ToxicityPromptTemplateStr, templates.ToxicityPromptRailsMap.Rails(),
		evals.WithMaxRetries(1), evals.WithRetryBackoff(0), evals.WithContinueOnError(true))
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "non-toxic", results[0].Label)
	assert.Equal(t, templates.NotParsable, results[1].Label)
	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "content filtered")
	assert.Contains(t, results[1].Err.Error(), "record 1")
	assert.EqualValues(t, 5, model.calls.Load(), "one retry for the failing record")
}

func TestClassify_InvalidInput(t *testing.T) {
	model := &mockModel{}

	_, err := evals.Classify(context.Background(), model, toxicityDataset(), templates.ToxicityPromptTemplateStr, nil)
	assert.ErrorIs(t, err, evals.ErrNoRails)

	_, err = evals.Classify(context.Background(), model, toxicityDataset(), 3.14, []string{"a"})
	assert.ErrorIs(t, err, templates.ErrInvalidTemplate)

	_, err = evals.Classify(context.Background(), model, toxicityDataset(), "{query}", []string{"a"})
	assert.ErrorIs(t, err, templates.ErrMissingVariable)

	assert.Zero(t, model.calls.Load())
}

func TestClassify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &mockModel{CompleteFunc: func(ctx context.Context, req llm.Request) (llm.Response, error) {
		return llm.Response{}, ctx.Err()
	}}

	_, err := evals.Classify(ctx, model, toxicityDataset(),
		templates.ToxicityPromptTemplateStr, templates.ToxicityPromptRailsMap.Rails(),
		evals.WithContinueOnError(true))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBinaryLabels(t *testing.T) {
	results := []evals.Classification{
		{Label: "relevant"},
		{Label: "irrelevant"},
		{Label: templates.NotParsable},
	}
	binary := evals.BinaryLabels(results, templates.RAGRelevancyPromptRailsMap)
	require.Len(t, binary, 3)
	require.NotNil(t, binary[0])
	assert.True(t, *binary[0])
	require.NotNil(t, binary[1])
	assert.False(t, *binary[1])
	assert.Nil(t, binary[2])
}

package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Tools []struct {
		Type     string `json:"type"`
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	} `json:"tools"`
	ToolChoice json.RawMessage `json:"tool_choice"`
}

func newServer(t *testing.T, handle func(req chatRequest) (int, string)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := handle(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T, url string) *openai.OpenAIClient {
	t.Helper()
	client, err := openai.NewOpenAIClient(openai.Config{
		APIKey:  "test-key",
		BaseURL: url + "/v1",
		Model:   "gpt-4o-mini",
	}, nil, nil)
	require.NoError(t, err)
	return client
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := openai.NewOpenAIClient(openai.Config{}, nil, nil)
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "from-env")
	client, err := openai.NewOpenAIClient(openai.Config{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", client.Name())
	assert.True(t, client.SupportsFunctionCalling())
}

func TestNewOpenAIClient_RequiresPromptBudget(t *testing.T) {
	_, err := openai.NewOpenAIClient(openai.Config{
		APIKey:           "test-key",
		MaxTokens:        256,
		MaxContextTokens: 200,
	}, nil, nil)
	assert.ErrorIs(t, err, llm.ErrNoPromptBudget)

	_, err = openai.NewOpenAIClient(openai.Config{
		APIKey:           "test-key",
		MaxTokens:        256,
		MaxContextTokens: 4096,
	}, nil, nil)
	assert.NoError(t, err)
}

func TestOpenAIClient_Complete(t *testing.T) {
	server := newServer(t, func(req chatRequest) (int, string) {
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "be strict", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Empty(t, req.Tools)
		return http.StatusOK, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"toxic"},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":1,"total_tokens":11}}`
	})

	resp, err := newClient(t, server.URL).Complete(context.Background(), llm.Request{
		Prompt:            "is this toxic?",
		SystemInstruction: "be strict",
	})
	require.NoError(t, err)
	assert.Equal(t, llm.Response{Text: "toxic"}, resp)
}

func TestOpenAIClient_CompleteWithFunction(t *testing.T) {
	server := newServer(t, func(req chatRequest) (int, string) {
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "record_response", req.Tools[0].Function.Name)
		assert.Contains(t, string(req.ToolChoice), "record_response")
		return http.StatusOK, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"","tool_calls":[{"id":"call_1","type":"function","function":{"name":"record_response","arguments":"{\"response\":\"relevant\"}"}}]},"finish_reason":"tool_calls"}]}`
	})

	resp, err := newClient(t, server.URL).Complete(context.Background(), llm.Request{
		Prompt: "p",
		Function: &llm.FunctionDefinition{
			Name:       "record_response",
			Parameters: map[string]any{"type": "object"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"response":"relevant"}`, resp.FunctionArguments)
}

func TestOpenAIClient_CompleteErrors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		server := newServer(t, func(req chatRequest) (int, string) {
			return http.StatusTooManyRequests, `{"error":{"message":"rate limited","type":"requests"}}`
		})
		_, err := newClient(t, server.URL).Complete(context.Background(), llm.Request{Prompt: "p"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OpenAI API error")
	})

	t.Run("no choices", func(t *testing.T) {
		server := newServer(t, func(req chatRequest) (int, string) {
			return http.StatusOK, `{"id":"1","object":"chat.completion","choices":[]}`
		})
		_, err := newClient(t, server.URL).Complete(context.Background(), llm.Request{Prompt: "p"})
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	})
}

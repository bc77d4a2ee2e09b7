package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agentboard/internal/config"
	"agentboard/internal/llm"
	"agentboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoClient_EchoesLastMessage(t *testing.T) {
	client := llm.NewEchoClient("test-model")

	reply, err := client.GenerateReply(context.Background(), []llm.Message{
		{Role: model.RoleUser, Content: "first"},
		{Role: model.RoleAssistant, Content: "Echo: first"},
		{Role: model.RoleUser, Content: "second"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Echo: second", reply.Content)
	assert.Equal(t, "echo", reply.Provider)
	assert.Equal(t, "test-model", reply.Model)
}

func TestEchoClient_EmptyHistory(t *testing.T) {
	client := llm.NewEchoClient("test-model")

	reply, err := client.GenerateReply(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Echo: ", reply.Content)
}

func TestOpenAIClient_GenerateReply(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hi there"}},
			},
		})
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient(srv.URL, "sk-test", "test-model")
	reply, err := client.GenerateReply(context.Background(), []llm.Message{
		{Role: model.RoleUser, Content: "hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply.Content)
	assert.Equal(t, "openai", reply.Provider)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient(srv.URL, "", "test-model")
	_, err := client.GenerateReply(context.Background(), []llm.Message{
		{Role: model.RoleUser, Content: "hello"},
	})

	assert.Error(t, err)
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "upstream unavailable"},
		})
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient(srv.URL, "", "test-model")
	_, err := client.GenerateReply(context.Background(), []llm.Message{
		{Role: model.RoleUser, Content: "hello"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestNewClientFromConfig_EchoWhenUnconfigured(t *testing.T) {
	client := llm.NewClientFromConfig(&config.Config{LLMModel: "m"})
	_, ok := client.(*llm.EchoClient)
	assert.True(t, ok)
}

func TestNewClientFromConfig_OpenAIWhenBaseURLSet(t *testing.T) {
	client := llm.NewClientFromConfig(&config.Config{LLMBaseURL: "http://localhost:4000", LLMModel: "m"})
	_, ok := client.(*llm.OpenAIClient)
	assert.True(t, ok)
}

func TestNewClientFromConfig_Anthropic(t *testing.T) {
	client := llm.NewClientFromConfig(&config.Config{LLMProvider: "anthropic", LLMModel: "m"})
	_, ok := client.(*llm.AnthropicClient)
	assert.True(t, ok)
}

// Package llm defines the completion provider abstraction used by the chat
// run lifecycle, plus the built-in provider implementations.
package llm

import (
	"context"

	"agentboard/internal/config"
	"agentboard/internal/model"
)

// Message is one {role, content} pair of the prompt history, in chronological
// order.
type Message struct {
	Role    model.MessageRole `json:"role"`
	Content string            `json:"content"`
}

// Reply is a completed provider response.
type Reply struct {
	Content  string
	Provider string
	Model    string
}

// Client generates one assistant reply from an ordered message history. Any
// failure (transport, malformed payload) is returned as an error and treated
// uniformly as a run failure by the caller.
type Client interface {
	GenerateReply(ctx context.Context, history []Message) (*Reply, error)
}

// NewClientFromConfig selects the provider implementation:
//
//	LLM_PROVIDER=anthropic            → Anthropic Messages API
//	LLM_BASE_URL set                  → OpenAI-compatible chat completions
//	otherwise                         → deterministic echo (no network)
func NewClientFromConfig(cfg *config.Config) Client {
	switch {
	case cfg.LLMProvider == "anthropic":
		return NewAnthropicClient(cfg.LLMAPIKey, cfg.LLMModel)
	case cfg.LLMBaseURL != "":
		return NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	default:
		return NewEchoClient(cfg.LLMModel)
	}
}

// EchoClient is the no-provider mode: it deterministically echoes the last
// message instead of making a network call.
type EchoClient struct {
	model string
}

func NewEchoClient(model string) *EchoClient {
	return &EchoClient{model: model}
}

func (c *EchoClient) GenerateReply(_ context.Context, history []Message) (*Reply, error) {
	last := ""
	if len(history) > 0 {
		last = history[len(history)-1].Content
	}
	return &Reply{Content: "Echo: " + last, Provider: "echo", Model: c.model}, nil
}

package llm

import (
	"context"
	"fmt"

	"agentboard/internal/model"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 1024

// AnthropicClient generates replies through the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
}

// NewAnthropicClient creates a client with an explicit API key; when the key
// is empty the SDK falls back to ANTHROPIC_API_KEY from the environment.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	if apiKey == "" {
		return &AnthropicClient{client: anthropic.NewClient(), model: model}
	}
	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *AnthropicClient) GenerateReply(ctx context.Context, history []Message) (*Reply, error) {
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case model.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case model.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		Messages:  messages,
		MaxTokens: anthropicMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var content string
	for _, block := range msg.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return nil, fmt.Errorf("anthropic: response contains no text content")
	}

	return &Reply{Content: content, Provider: "anthropic", Model: c.model}, nil
}

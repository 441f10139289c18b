package chat

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v3"
)

const (
	maxReplyTokens   = 150
	replyTemperature = 0.7
)

// OpenAICompleter runs the conversation window through the chat
// completions endpoint.
type OpenAICompleter struct {
	Client openai.Client
	Model  string
}

func (c *OpenAICompleter) Complete(ctx context.Context, turns []Turn) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case RoleSystem:
			msgs = append(msgs, openai.SystemMessage(t.Content))
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(t.Content))
		default:
			msgs = append(msgs, openai.UserMessage(t.Content))
		}
	}

	resp, err := c.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    msgs,
		Model:       openai.ChatModel(c.Model),
		MaxTokens:   openai.Int(maxReplyTokens),
		Temperature: openai.Float(replyTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty message content")
	}

	return content, nil
}

// ProbeService issues one tiny completion to verify that the credential and
// connection actually work.
func ProbeService(ctx context.Context, client openai.Client, model string) error {
	_, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("test"),
		},
		Model:     openai.ChatModel(model),
		MaxTokens: openai.Int(5),
	})
	return err
}

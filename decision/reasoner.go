package decision

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// Reasoner issues one reasoning call over the rendered evidence prompt and
// returns the raw model text. Implementations may fail; the engine catches
// every error and falls back locally.
type Reasoner interface {
	Reason(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const (
	reasoningModel       = openai.GPT4oMini
	reasoningTemperature = 0.1 // deterministic-leaning output
	reasoningMaxTokens   = 500
)

// OpenAIReasoner calls the chat completion API requesting strict JSON.
type OpenAIReasoner struct {
	client *openai.Client
}

// NewOpenAIReasoner returns nil when no API key is configured, which the
// engine treats as "no reasoning service".
func NewOpenAIReasoner(apiKey string) *OpenAIReasoner {
	if apiKey == "" {
		return nil
	}
	return &OpenAIReasoner{client: openai.NewClient(apiKey)}
}

func (r *OpenAIReasoner) Reason(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := r.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       reasoningModel,
			Temperature: reasoningTemperature,
			MaxTokens:   reasoningMaxTokens,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty response from reasoning service")
	}
	return resp.Choices[0].Message.Content, nil
}

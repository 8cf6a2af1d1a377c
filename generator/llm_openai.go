package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAINarrator rewrites the template draft with a chat completion model.
type OpenAINarrator struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAINarratorFromConfig(cfg *LLMSettings) (*OpenAINarrator, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set llm.api_key or OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAINarrator{Model: cfg.Model, Opts: opts}, nil
}

func (o *OpenAINarrator) Name() string { return "openai:" + o.Model }

func (o *OpenAINarrator) Narrate(ctx context.Context, req Request) (string, error) {
	client := openai.NewClient(o.Opts...)
	prompt := BuildRewritePrompt(req)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

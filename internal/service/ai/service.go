// Package ai backs the reference endpoints with an Ark chat model via an
// eino chain. When no credentials are configured the handlers fall back to
// the deterministic canned responder so the backend stays usable offline.
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/neurofolio/neurofolio/internal/config"
	"github.com/neurofolio/neurofolio/internal/model/options"
)

// Service runs prompt+model chains for the assistant operations.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the chat chain against the configured Ark model.
func NewService(ctx context.Context, cfg config.AI) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

func (s *Service) invoke(ctx context.Context, system, query string) (string, error) {
	response, err := s.chain.Invoke(ctx, map[string]any{
		"system": system,
		"query":  query,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	return response.Content, nil
}

// Summarize condenses project text into a short summary.
func (s *Service) Summarize(ctx context.Context, text string, m options.Model) (string, error) {
	summary, err := s.invoke(ctx, summarizeSystemPrompt(m), text)
	if err != nil {
		return "", err
	}
	log.Printf("[ai] generated summary, model=%s length=%d", m, len(summary))
	return summary, nil
}

// Translate renders text into the target language.
func (s *Service) Translate(ctx context.Context, text string, target options.Language) (string, error) {
	return s.invoke(ctx, translateSystemPrompt(target), text)
}

// Chat answers one conversational prompt in the selected persona and
// language.
func (s *Service) Chat(ctx context.Context, prompt string, m options.Model, language options.Language, persona options.Persona) (string, error) {
	reply, err := s.invoke(ctx, chatSystemPrompt(persona, language), prompt)
	if err != nil {
		return "", err
	}
	log.Printf("[ai] generated reply, persona=%s language=%s length=%d", persona, language, len(reply))
	return reply, nil
}

// DescribeImage asks the model about an uploaded image. The image travels
// inline as a data URL, bypassing the text-only chain.
func (s *Service) DescribeImage(ctx context.Context, name, mediaType string, data []byte) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(describeImageSystemPrompt),
		{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{
					Type: schema.ChatMessagePartTypeText,
					Text: fmt.Sprintf("Describe the attached image %q.", name),
				},
				{
					Type: schema.ChatMessagePartTypeImageURL,
					ImageURL: &schema.ChatMessageImageURL{
						URL:      imageDataURL(mediaType, data),
						MIMEType: mediaType,
						Detail:   schema.ImageURLDetailAuto,
					},
				},
			},
		},
	}

	response, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to describe image: %w", err)
	}
	log.Printf("[ai] described image %q (%s, %d bytes)", name, mediaType, len(data))
	return response.Content, nil
}

// imageDataURL inlines image bytes as an RFC 2397 data URL.
func imageDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

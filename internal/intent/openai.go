package intent

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

const openaiModel = "gpt-4o-mini"

// OpenAIExtractor uses OpenAI's chat completions API for keyword extraction.
// It shares the prompt and response contract with the Gemini extractor.
type OpenAIExtractor struct {
	client openai.Client
}

// NewOpenAIExtractor creates an OpenAI-based extractor. It uses the
// OPENAI_API_KEY environment variable for authentication.
func NewOpenAIExtractor() *OpenAIExtractor {
	return &OpenAIExtractor{client: openai.NewClient()}
}

// Extract implements the Extractor interface using OpenAI.
func (o *OpenAIExtractor) Extract(ctx context.Context, message string) (Intent, error) {
	prompt := fmt.Sprintf(geminiPrompt, message)

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openaiModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return Intent{}, fmt.Errorf("keyword extraction failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Intent{}, fmt.Errorf("empty response from openai")
	}

	return parseExtraction(resp.Choices[0].Message.Content)
}

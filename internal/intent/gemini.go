package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash-lite"

// Gemini Flash Lite pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.075
	geminiOutputPricePerMillion = 0.30
)

var geminiPrompt = strings.TrimSpace(dedent.Dedent(`
	You are a fashion shopping assistant. Extract structured search keywords from
	the user's request below.

	Respond in JSON format with these fields:
	- keywords: general search terms describing what to look for (array of strings)
	- colors: requested or implied colors (array of strings, lowercase color names)
	- occasions: occasions the outfit is for, e.g. "party", "business", "casual", "sport" (array of strings)
	- styles: style descriptors, e.g. "elegant", "streetwear", "minimalist" (array of strings)
	- materials: requested materials, e.g. "cotton", "silk", "denim" (array of strings)
	- categories: garment categories if the user asked for specific ones, e.g. "dress", "top" (array of strings)
	- mood: one short phrase capturing the mood of the request
	- explanation: one sentence explaining your interpretation

	Use empty arrays for fields the request says nothing about. Do not invent
	constraints the user did not express.

	Example response:
	{"keywords": ["dance", "evening"], "colors": ["black"], "occasions": ["party"], "styles": ["elegant"], "materials": [], "categories": [], "mood": "glamorous night out", "explanation": "The user wants something to wear for dancing in the evening."}

	Respond ONLY with the JSON object, no markdown or other text.

	User request: %s
`))

// GeminiExtractor uses Google's Gemini API for keyword extraction.
type GeminiExtractor struct {
	client *genai.Client
}

// NewGeminiExtractor creates a Gemini-based extractor. It uses the
// GEMINI_API_KEY environment variable for authentication.
func NewGeminiExtractor(ctx context.Context) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{client: client}, nil
}

// Extract implements the Extractor interface using Gemini.
func (g *GeminiExtractor) Extract(ctx context.Context, message string) (Intent, error) {
	prompt := fmt.Sprintf(geminiPrompt, message)

	result, err := g.client.Models.GenerateContent(ctx, geminiModel, []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}, nil)
	if err != nil {
		return Intent{}, fmt.Errorf("keyword extraction failed: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return Intent{}, fmt.Errorf("empty response from gemini")
	}

	in, err := parseExtraction(result.Text())
	if err != nil {
		return Intent{}, err
	}

	if result.UsageMetadata != nil {
		cost := calculateGeminiCost(
			int64(result.UsageMetadata.PromptTokenCount),
			int64(result.UsageMetadata.CandidatesTokenCount),
		)
		log.Info().
			Str("model", geminiModel).
			Int("inputTokens", int(result.UsageMetadata.PromptTokenCount)).
			Int("outputTokens", int(result.UsageMetadata.CandidatesTokenCount)).
			Float64("costUSD", cost).
			Strs("keywords", in.Keywords).
			Strs("occasions", in.Occasions).
			Msg("keyword extraction llm call")
	}

	return in, nil
}

func calculateGeminiCost(inputTokens, outputTokens int64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * geminiInputPricePerMillion
	outputCost := float64(outputTokens) / 1_000_000 * geminiOutputPricePerMillion
	return inputCost + outputCost
}

// parseExtraction parses a model response into an Intent.
func parseExtraction(text string) (Intent, error) {
	jsonStr, err := extractJSONObject(text)
	if err != nil {
		return Intent{}, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	var resp extractionResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return Intent{}, fmt.Errorf("failed to parse extraction JSON: %w (response: %s)", err, jsonStr)
	}

	return fromResponse(resp), nil
}

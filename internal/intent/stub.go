package intent

import (
	"context"
	"strings"
)

// StaticExtractor is a deterministic, offline extractor driven by a fixed
// keyword table. It is used in tests and when no LLM API key is configured;
// given the same message it always produces the same Intent.
type StaticExtractor struct{}

// NewStaticExtractor creates the offline extractor.
func NewStaticExtractor() *StaticExtractor {
	return &StaticExtractor{}
}

var occasionTerms = map[string]string{
	"dance":     "party",
	"dancing":   "party",
	"party":     "party",
	"club":      "party",
	"wedding":   "formal",
	"gala":      "formal",
	"business":  "business",
	"meeting":   "business",
	"office":    "business",
	"interview": "business",
	"work":      "business",
	"gym":       "sport",
	"running":   "sport",
	"workout":   "sport",
	"beach":     "casual",
	"weekend":   "casual",
	"casual":    "casual",
	"date":      "party",
}

var styleTerms = map[string]bool{
	"elegant": true, "chic": true, "minimalist": true, "sporty": true,
	"streetwear": true, "vintage": true, "classic": true, "bohemian": true,
	"edgy": true, "romantic": true, "formal": true,
}

var colorTerms = map[string]bool{
	"black": true, "white": true, "red": true, "blue": true, "navy": true,
	"green": true, "yellow": true, "pink": true, "purple": true, "orange": true,
	"brown": true, "beige": true, "grey": true, "gray": true, "silver": true,
	"gold": true, "cream": true,
}

var materialTerms = map[string]bool{
	"cotton": true, "silk": true, "denim": true, "leather": true, "wool": true,
	"linen": true, "satin": true, "velvet": true, "polyester": true,
}

var categoryTerms = map[string]string{
	"dress": "dress", "gown": "dress", "top": "top", "shirt": "top",
	"blouse": "top", "pants": "bottom", "jeans": "bottom", "skirt": "bottom",
	"jacket": "outerwear", "coat": "outerwear", "blazer": "outerwear",
}

// Extract implements the Extractor interface from the fixed term tables.
func (s *StaticExtractor) Extract(_ context.Context, message string) (Intent, error) {
	resp := extractionResponse{
		Keywords:   []string{},
		Colors:     []string{},
		Occasions:  []string{},
		Styles:     []string{},
		Materials:  []string{},
		Categories: []string{},
	}

	for _, word := range strings.Fields(strings.ToLower(message)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if word == "" {
			continue
		}
		if occ, ok := occasionTerms[word]; ok {
			resp.Occasions = append(resp.Occasions, occ)
			resp.Keywords = append(resp.Keywords, word)
			continue
		}
		if colorTerms[word] {
			resp.Colors = append(resp.Colors, word)
			continue
		}
		if styleTerms[word] {
			resp.Styles = append(resp.Styles, word)
			continue
		}
		if materialTerms[word] {
			resp.Materials = append(resp.Materials, word)
			continue
		}
		if cat, ok := categoryTerms[word]; ok {
			resp.Categories = append(resp.Categories, cat)
			resp.Keywords = append(resp.Keywords, word)
		}
	}

	resp.Explanation = "offline keyword-table extraction"
	return fromResponse(resp), nil
}

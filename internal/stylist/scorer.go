package stylist

import (
	"math"
	"strings"

	"github.com/stylifyapp/stylist/internal/catalog"
	"github.com/stylifyapp/stylist/internal/intent"
)

// Relevance scoring is additive over four axes plus a confidence bonus,
// capped at 100. Missing attribute values take the neutral branch of each
// axis; scoring never fails on sparse data.
const (
	occasionExact    = 40
	occasionFallback = 20

	colorExact      = 25
	colorCompatible = 15
	colorNeutral    = 10 // no color requested

	styleMax     = 20
	styleNeutral = 10 // no objectives requested

	priceSweetSpot = 15 // 50-80% of budget
	priceBargain   = 12 // below 50%
	priceNearLimit = 8  // 80-100%
	priceNeutral   = 10 // no budget given

	confidenceHighBonus = 5 // confidence >= 0.9
	confidenceGoodBonus = 2 // confidence >= 0.8

	maxScore = 100
)

// Breakdown records the per-axis contributions behind one relevance score.
type Breakdown struct {
	Occasion   int `json:"occasion"`
	Color      int `json:"color"`
	Style      int `json:"style"`
	Price      int `json:"price"`
	Confidence int `json:"confidence"`
	Total      int `json:"total"`
}

// Scorer computes relevance scores against an Intent.
type Scorer struct {
	tables *Tables
}

// NewScorer creates a scorer over the shared lookup tables.
func NewScorer(tables *Tables) *Scorer {
	return &Scorer{tables: tables}
}

// Score computes the 0-100 relevance of one item for an intent.
func (s *Scorer) Score(item catalog.Item, in intent.Intent) Breakdown {
	b := Breakdown{
		Occasion:   s.occasionScore(item, in),
		Color:      s.colorScore(item, in),
		Style:      s.styleScore(item, in),
		Price:      s.priceScore(item, in),
		Confidence: s.confidenceBonus(item),
	}
	total := b.Occasion + b.Color + b.Style + b.Price + b.Confidence
	if total > maxScore {
		total = maxScore
	}
	b.Total = total
	return b
}

func (s *Scorer) occasionScore(item catalog.Item, in intent.Intent) int {
	occasion := ""
	if item.Attrs != nil {
		occasion = strings.ToLower(item.Attrs.Occasion)
	}
	if len(in.Occasions) == 0 {
		// No occasion requested; everything gets the generic credit.
		return occasionFallback
	}
	for _, want := range in.Occasions {
		if occasion == want {
			return occasionExact
		}
	}
	if occasion == FallbackOccasion {
		return occasionFallback
	}
	return 0
}

func (s *Scorer) colorScore(item catalog.Item, in intent.Intent) int {
	if len(in.Colors) == 0 {
		return colorNeutral
	}
	var itemColors []string
	if item.Attrs != nil {
		for _, c := range []string{item.Attrs.Color, item.Attrs.SecondaryColor} {
			if c != "" {
				itemColors = append(itemColors, strings.ToLower(c))
			}
		}
	}
	for _, want := range in.Colors {
		for _, have := range itemColors {
			if have == want {
				return colorExact
			}
		}
	}
	for _, want := range in.Colors {
		compat := s.tables.CompatibleSet(want)
		for _, have := range itemColors {
			if containsString(compat, have) {
				return colorCompatible
			}
		}
	}
	return 0
}

func (s *Scorer) styleScore(item catalog.Item, in intent.Intent) int {
	if len(in.Objectives) == 0 {
		return styleNeutral
	}

	haystack := strings.ToLower(item.Title)
	if item.Attrs != nil {
		haystack += " " + strings.ToLower(strings.Join([]string{
			item.Attrs.Style, item.Attrs.Occasion, item.Attrs.Material,
			item.Attrs.Pattern, item.Attrs.Fit, item.Attrs.FormalLevel,
		}, " "))
	}

	matched := 0
	for _, obj := range in.Objectives {
		if strings.Contains(haystack, obj) {
			matched++
		}
	}
	return int(math.Round(float64(matched) / float64(len(in.Objectives)) * styleMax))
}

func (s *Scorer) priceScore(item catalog.Item, in intent.Intent) int {
	if in.BudgetMax <= 0 {
		return priceNeutral
	}
	if item.Price <= 0 {
		return 0
	}
	ratio := item.Price / in.BudgetMax
	switch {
	case ratio > 1:
		return 0
	case ratio < 0.5:
		return priceBargain
	case ratio <= 0.8:
		return priceSweetSpot
	default:
		return priceNearLimit
	}
}

func (s *Scorer) confidenceBonus(item catalog.Item) int {
	if item.Attrs == nil {
		return 0
	}
	switch {
	case item.Attrs.ConfidenceScore >= 0.9:
		return confidenceHighBonus
	case item.Attrs.ConfidenceScore >= 0.8:
		return confidenceGoodBonus
	default:
		return 0
	}
}

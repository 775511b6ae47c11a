package stylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stylifyapp/stylist/internal/catalog"
	"github.com/stylifyapp/stylist/internal/intent"
)

func item(title string, price float64, attrs *catalog.VisionAttributes) catalog.Item {
	return catalog.Item{
		Product: catalog.Product{SKU: "SKU-1", Title: title, Price: price, InStock: true},
		Attrs:   attrs,
	}
}

func intentWith(mutate func(*intent.Intent)) intent.Intent {
	in := intent.Empty()
	if mutate != nil {
		mutate(&in)
	}
	return in
}

func TestScoreOccasionAxis(t *testing.T) {
	s := NewScorer(DefaultTables())

	tests := []struct {
		name string
		item catalog.Item
		in   intent.Intent
		want int
	}{
		{
			name: "exact occasion match",
			item: item("Top", 10, &catalog.VisionAttributes{Occasion: "party"}),
			in:   intentWith(func(in *intent.Intent) { in.Occasions = []string{"party"} }),
			want: 40,
		},
		{
			name: "casual fallback credit",
			item: item("Top", 10, &catalog.VisionAttributes{Occasion: "casual"}),
			in:   intentWith(func(in *intent.Intent) { in.Occasions = []string{"business"} }),
			want: 20,
		},
		{
			name: "mismatch",
			item: item("Top", 10, &catalog.VisionAttributes{Occasion: "sport"}),
			in:   intentWith(func(in *intent.Intent) { in.Occasions = []string{"business"} }),
			want: 0,
		},
		{
			name: "no occasion requested",
			item: item("Top", 10, nil),
			in:   intentWith(nil),
			want: 20,
		},
		{
			name: "missing attribute with occasion requested",
			item: item("Top", 10, nil),
			in:   intentWith(func(in *intent.Intent) { in.Occasions = []string{"party"} }),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.item, tt.in).Occasion)
		})
	}
}

func TestScoreColorAxis(t *testing.T) {
	s := NewScorer(DefaultTables())

	tests := []struct {
		name string
		item catalog.Item
		in   intent.Intent
		want int
	}{
		{
			name: "exact color",
			item: item("Top", 10, &catalog.VisionAttributes{Color: "black"}),
			in:   intentWith(func(in *intent.Intent) { in.Colors = []string{"black"} }),
			want: 25,
		},
		{
			name: "secondary color exact",
			item: item("Top", 10, &catalog.VisionAttributes{Color: "white", SecondaryColor: "black"}),
			in:   intentWith(func(in *intent.Intent) { in.Colors = []string{"black"} }),
			want: 25,
		},
		{
			name: "compatible color",
			item: item("Top", 10, &catalog.VisionAttributes{Color: "white"}),
			in:   intentWith(func(in *intent.Intent) { in.Colors = []string{"black"} }),
			want: 15,
		},
		{
			name: "no color requested",
			item: item("Top", 10, &catalog.VisionAttributes{Color: "green"}),
			in:   intentWith(nil),
			want: 10,
		},
		{
			name: "incompatible color",
			item: item("Top", 10, &catalog.VisionAttributes{Color: "orange"}),
			in:   intentWith(func(in *intent.Intent) { in.Colors = []string{"purple"} }),
			want: 0,
		},
		{
			name: "missing color with color requested",
			item: item("Top", 10, nil),
			in:   intentWith(func(in *intent.Intent) { in.Colors = []string{"black"} }),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.item, tt.in).Color)
		})
	}
}

func TestScoreStyleAxis(t *testing.T) {
	s := NewScorer(DefaultTables())

	tests := []struct {
		name string
		item catalog.Item
		in   intent.Intent
		want int
	}{
		{
			name: "all objectives matched",
			item: item("Elegant Silk Top", 10, &catalog.VisionAttributes{Style: "elegant", Material: "silk"}),
			in:   intentWith(func(in *intent.Intent) { in.Objectives = []string{"elegant", "silk"} }),
			want: 20,
		},
		{
			name: "half matched rounds to ten",
			item: item("Elegant Top", 10, &catalog.VisionAttributes{Style: "elegant"}),
			in:   intentWith(func(in *intent.Intent) { in.Objectives = []string{"elegant", "velvet"} }),
			want: 10,
		},
		{
			name: "no objectives requested",
			item: item("Top", 10, nil),
			in:   intentWith(nil),
			want: 10,
		},
		{
			name: "objective matched in title only",
			item: item("Vintage Band Tee", 10, nil),
			in:   intentWith(func(in *intent.Intent) { in.Objectives = []string{"vintage"} }),
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.item, tt.in).Style)
		})
	}
}

func TestScorePriceAxis(t *testing.T) {
	s := NewScorer(DefaultTables())

	tests := []struct {
		name   string
		price  float64
		budget float64
		want   int
	}{
		{name: "75 percent of budget is the sweet spot", price: 60, budget: 80, want: 15},
		{name: "exactly half the budget", price: 40, budget: 80, want: 15},
		{name: "bargain below half", price: 30, budget: 80, want: 12},
		{name: "near the limit", price: 75, budget: 80, want: 8},
		{name: "at the limit", price: 80, budget: 80, want: 8},
		{name: "over budget", price: 81, budget: 80, want: 0},
		{name: "no price", price: 0, budget: 80, want: 0},
		{name: "no budget", price: 60, budget: 0, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := intentWith(func(in *intent.Intent) { in.BudgetMax = tt.budget })
			assert.Equal(t, tt.want, s.Score(item("Top", tt.price, nil), in).Price)
		})
	}
}

func TestScoreConfidenceBonus(t *testing.T) {
	s := NewScorer(DefaultTables())
	in := intentWith(nil)

	assert.Equal(t, 5, s.Score(item("Top", 10, &catalog.VisionAttributes{ConfidenceScore: 0.95}), in).Confidence)
	assert.Equal(t, 2, s.Score(item("Top", 10, &catalog.VisionAttributes{ConfidenceScore: 0.85}), in).Confidence)
	assert.Equal(t, 0, s.Score(item("Top", 10, &catalog.VisionAttributes{ConfidenceScore: 0.5}), in).Confidence)
	assert.Equal(t, 0, s.Score(item("Top", 10, nil), in).Confidence)
}

func TestScoreBoundsAndCap(t *testing.T) {
	s := NewScorer(DefaultTables())

	// A candidate maxing every axis plus the confidence bonus exceeds 100
	// before capping.
	best := item("Elegant Party Top", 60, &catalog.VisionAttributes{
		Occasion:        "party",
		Color:           "black",
		Style:           "elegant",
		ConfidenceScore: 0.95,
	})
	in := intentWith(func(in *intent.Intent) {
		in.Occasions = []string{"party"}
		in.Colors = []string{"black"}
		in.Objectives = []string{"elegant"}
		in.BudgetMax = 80
	})

	b := s.Score(best, in)
	assert.Equal(t, 100, b.Total)
	assert.Equal(t, 105, b.Occasion+b.Color+b.Style+b.Price+b.Confidence)

	// Worst case never goes negative, and scoring a bare product never panics.
	worst := s.Score(item("Thing", 0, nil), intentWith(func(in *intent.Intent) {
		in.Occasions = []string{"party"}
		in.Colors = []string{"black"}
		in.Objectives = []string{"elegant"}
		in.BudgetMax = 80
	}))
	assert.GreaterOrEqual(t, worst.Total, 0)
	assert.LessOrEqual(t, worst.Total, 100)
}

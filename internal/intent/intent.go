// Package intent turns a free-text shopping request into a structured Intent
// via an external keyword-extraction model, with a uniform timeout-and-
// fallback policy: extraction failure always degrades to an empty Intent and
// never fails the pipeline.
package intent

import "strings"

// Intent is the structured representation of a fashion request. All slices
// are non-nil; a zero BudgetMax means no budget constraint.
type Intent struct {
	Keywords    []string `json:"keywords"`
	Colors      []string `json:"colors"`
	Occasions   []string `json:"occasions"`
	Styles      []string `json:"styles"`
	Materials   []string `json:"materials"`
	Categories  []string `json:"categories"`
	Objectives  []string `json:"objectives"`
	BudgetMax   float64  `json:"budget_max,omitempty"`
	Mood        string   `json:"mood,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Empty returns an Intent with all arrays empty. This is the degraded result
// used whenever extraction fails.
func Empty() Intent {
	return Intent{
		Keywords:   []string{},
		Colors:     []string{},
		Occasions:  []string{},
		Styles:     []string{},
		Materials:  []string{},
		Categories: []string{},
		Objectives: []string{},
	}
}

// IsEmpty reports whether the intent carries no search terms at all.
func (in Intent) IsEmpty() bool {
	return len(in.Keywords) == 0 && len(in.Colors) == 0 && len(in.Occasions) == 0 &&
		len(in.Styles) == 0 && len(in.Materials) == 0 && len(in.Categories) == 0
}

// extractionResponse is the JSON contract with the keyword-extraction model.
type extractionResponse struct {
	Keywords    []string `json:"keywords"`
	Colors      []string `json:"colors"`
	Occasions   []string `json:"occasions"`
	Styles      []string `json:"styles"`
	Materials   []string `json:"materials"`
	Categories  []string `json:"categories"`
	Mood        string   `json:"mood"`
	Explanation string   `json:"explanation"`
}

// fromResponse normalizes an extraction response into an Intent. Objectives
// are derived from styles plus keywords: the scorer treats them as the terms
// the outfit should visibly satisfy.
func fromResponse(r extractionResponse) Intent {
	in := Empty()
	in.Keywords = normalizeTerms(r.Keywords)
	in.Colors = normalizeTerms(r.Colors)
	in.Occasions = normalizeTerms(r.Occasions)
	in.Styles = normalizeTerms(r.Styles)
	in.Materials = normalizeTerms(r.Materials)
	in.Categories = normalizeTerms(r.Categories)
	in.Objectives = normalizeTerms(append(append([]string{}, r.Styles...), r.Keywords...))
	in.Mood = strings.TrimSpace(r.Mood)
	in.Explanation = strings.TrimSpace(r.Explanation)
	return in
}

// normalizeTerms lowercases, trims and dedupes terms, preserving order.
func normalizeTerms(terms []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

package stylist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stylifyapp/stylist/internal/intent"
)

// OutfitType classifies the structural shape of an assembled outfit.
type OutfitType string

const (
	OutfitDress              OutfitType = "dress"
	OutfitTopBottom          OutfitType = "top_bottom"
	OutfitTopBottomOuterwear OutfitType = "top_bottom_outerwear"
	OutfitPartial            OutfitType = "partial"
)

// Pair score aggregation: a weighted mean of the top and bottom relevance
// scores. Tops carry slightly more visual weight. Outerwear is an
// augmentation, not a scored role, and never alters the pair score.
const (
	topWeight    = 0.55
	bottomWeight = 0.45
)

// OutfitItem is one role-tagged member of an outfit.
type OutfitItem struct {
	SKU            string  `json:"sku"`
	Title          string  `json:"title"`
	Role           Role    `json:"role"`
	Category       string  `json:"category"`
	Color          string  `json:"color"`
	Price          float64 `json:"price"`
	RelevanceScore int     `json:"relevance_score"`
}

// Outfit is one assembled, ranked recommendation.
type Outfit struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Type             OutfitType   `json:"outfit_type"`
	Items            []OutfitItem `json:"items"`
	TotalPrice       float64      `json:"total_price"`
	Score            float64      `json:"score"`
	StyleExplanation string       `json:"style_explanation"`
}

// Complete reports whether the outfit is structurally wearable: a dress, or a
// top and bottom pair.
func (o Outfit) Complete() bool {
	if o.Type == OutfitDress {
		return true
	}
	var hasTop, hasBottom bool
	for _, it := range o.Items {
		switch it.Role {
		case RoleTop:
			hasTop = true
		case RoleBottom:
			hasBottom = true
		}
	}
	return hasTop && hasBottom
}

// RoleRetriever is the backfill capability the assembler depends on.
type RoleRetriever interface {
	RetrieveRole(ctx context.Context, in intent.Intent, role Role, limit int) ([]Candidate, error)
}

// Assembler builds ranked outfits from grouped candidates. When the grouped
// candidates under-represent a required role it issues a role-restricted
// backfill retrieval before concluding the role is unavailable; when no
// complete outfit can be built even then, it degrades to single-item partial
// outfits instead of failing.
type Assembler struct {
	tables    *Tables
	retriever RoleRetriever
}

// NewAssembler wires an assembler over the shared tables and the backfill
// retriever.
func NewAssembler(tables *Tables, retriever RoleRetriever) *Assembler {
	return &Assembler{tables: tables, retriever: retriever}
}

// Assemble builds up to limit outfits for the grouped candidates.
func (a *Assembler) Assemble(ctx context.Context, groups map[Role][]Candidate, in intent.Intent, limit int) []Outfit {
	if limit <= 0 {
		limit = 5
	}

	a.backfill(ctx, groups, in, limit)

	var outfits []Outfit
	outfits = append(outfits, a.dressOutfits(groups[RoleDress], in)...)
	outfits = append(outfits, a.pairOutfits(groups, in)...)

	outfits = dedupe(outfits)
	rank(outfits)

	if len(outfits) == 0 {
		outfits = a.partialOutfits(groups, in, limit)
	}

	if len(outfits) > limit {
		outfits = outfits[:limit]
	}
	return outfits
}

// backfill re-retrieves any required role that has zero candidates while its
// counterpart exists. Retrieval skew must not silently produce incomplete
// outfits when compatible items exist elsewhere in the catalog.
func (a *Assembler) backfill(ctx context.Context, groups map[Role][]Candidate, in intent.Intent, limit int) {
	need := []Role{}
	if len(groups[RoleTop]) == 0 && (len(groups[RoleBottom]) > 0 || len(groups[RoleDress]) == 0) {
		need = append(need, RoleTop)
	}
	if len(groups[RoleBottom]) == 0 && (len(groups[RoleTop]) > 0 || len(groups[RoleDress]) == 0) {
		need = append(need, RoleBottom)
	}

	seen := map[string]bool{}
	for _, cands := range groups {
		for _, c := range cands {
			seen[c.SKU] = true
		}
	}

	for _, role := range need {
		cands, err := a.retriever.RetrieveRole(ctx, in, role, limit)
		if err != nil {
			// Backfill failure is not fatal; assembly continues on what the
			// primary retrieval produced.
			log.Warn().Err(err).Str("role", string(role)).Msg("backfill retrieval failed")
			continue
		}
		for _, c := range cands {
			if seen[c.SKU] {
				continue
			}
			seen[c.SKU] = true
			groups[role] = append(groups[role], c)
		}
	}
}

// dressOutfits emits each dress candidate as a standalone outfit.
func (a *Assembler) dressOutfits(dresses []Candidate, in intent.Intent) []Outfit {
	var outfits []Outfit
	for _, d := range dresses {
		outfits = append(outfits, Outfit{
			ID:               uuid.New().String(),
			Title:            outfitTitle(in, d),
			Type:             OutfitDress,
			Items:            []OutfitItem{itemFromCandidate(d)},
			TotalPrice:       d.Price,
			Score:            float64(d.Relevance),
			StyleExplanation: explain(in, d),
		})
	}
	return outfits
}

// pairOutfits emits color-compatible top+bottom combinations, augmented with
// the best compatible outerwear when the combined price stays within budget.
func (a *Assembler) pairOutfits(groups map[Role][]Candidate, in intent.Intent) []Outfit {
	var outfits []Outfit
	for _, top := range groups[RoleTop] {
		for _, bottom := range groups[RoleBottom] {
			if top.SKU == bottom.SKU {
				continue
			}
			if !a.tables.Compatible(top.Color(), bottom.Color()) {
				continue
			}

			o := Outfit{
				ID:         uuid.New().String(),
				Title:      outfitTitle(in, top, bottom),
				Type:       OutfitTopBottom,
				Items:      []OutfitItem{itemFromCandidate(top), itemFromCandidate(bottom)},
				TotalPrice: top.Price + bottom.Price,
				Score:      combineScores(top.Relevance, bottom.Relevance),
			}

			if outer, ok := a.pickOuterwear(groups[RoleOuterwear], top, bottom, o.TotalPrice, in.BudgetMax); ok {
				o.Type = OutfitTopBottomOuterwear
				o.Items = append(o.Items, itemFromCandidate(outer))
				o.TotalPrice += outer.Price
			}

			o.StyleExplanation = explain(in, top, bottom)
			outfits = append(outfits, o)
		}
	}
	return outfits
}

// pickOuterwear returns the highest-scoring outerwear candidate that is
// color-compatible with both pair members and keeps the outfit within budget.
func (a *Assembler) pickOuterwear(outerwear []Candidate, top, bottom Candidate, pairPrice, budget float64) (Candidate, bool) {
	best := Candidate{}
	found := false
	for _, ow := range outerwear {
		if ow.SKU == top.SKU || ow.SKU == bottom.SKU {
			continue
		}
		if budget > 0 && pairPrice+ow.Price > budget {
			continue
		}
		if !a.tables.Compatible(ow.Color(), top.Color()) || !a.tables.Compatible(ow.Color(), bottom.Color()) {
			continue
		}
		if !found || ow.Relevance > best.Relevance {
			best = ow
			found = true
		}
	}
	return best, found
}

// partialOutfits is the sparse-catalog fallback: best-effort single-item
// outfits so the caller always receives something to inspect.
func (a *Assembler) partialOutfits(groups map[Role][]Candidate, in intent.Intent, limit int) []Outfit {
	var all []Candidate
	for _, role := range Roles {
		all = append(all, groups[role]...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Relevance != all[j].Relevance {
			return all[i].Relevance > all[j].Relevance
		}
		if all[i].Price != all[j].Price {
			return all[i].Price < all[j].Price
		}
		return all[i].SKU < all[j].SKU
	})

	var outfits []Outfit
	seen := map[string]bool{}
	for _, c := range all {
		if seen[c.SKU] {
			continue
		}
		seen[c.SKU] = true
		outfits = append(outfits, Outfit{
			ID:               uuid.New().String(),
			Title:            outfitTitle(in, c),
			Type:             OutfitPartial,
			Items:            []OutfitItem{itemFromCandidate(c)},
			TotalPrice:       c.Price,
			Score:            float64(c.Relevance),
			StyleExplanation: explain(in, c),
		})
		if len(outfits) >= limit {
			break
		}
	}
	return outfits
}

// combineScores aggregates a top and bottom relevance score into one outfit
// score as a fixed weighted mean (top 0.55, bottom 0.45).
func combineScores(top, bottom int) float64 {
	return topWeight*float64(top) + bottomWeight*float64(bottom)
}

// dedupe drops outfits whose SKU multiset already appeared, spreading
// coverage across distinct items.
func dedupe(outfits []Outfit) []Outfit {
	seen := map[string]bool{}
	out := outfits[:0]
	for _, o := range outfits {
		skus := make([]string, len(o.Items))
		for i, it := range o.Items {
			skus[i] = it.SKU
		}
		sort.Strings(skus)
		key := strings.Join(skus, "+")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}

// rank orders outfits by score descending, then total price ascending, with
// the first SKU as a final stable tie-break for determinism.
func rank(outfits []Outfit) {
	sort.SliceStable(outfits, func(i, j int) bool {
		if outfits[i].Score != outfits[j].Score {
			return outfits[i].Score > outfits[j].Score
		}
		if outfits[i].TotalPrice != outfits[j].TotalPrice {
			return outfits[i].TotalPrice < outfits[j].TotalPrice
		}
		return firstSKU(outfits[i]) < firstSKU(outfits[j])
	})
}

func firstSKU(o Outfit) string {
	if len(o.Items) == 0 {
		return ""
	}
	return o.Items[0].SKU
}

func itemFromCandidate(c Candidate) OutfitItem {
	return OutfitItem{
		SKU:            c.SKU,
		Title:          c.Title,
		Role:           c.Role,
		Category:       c.Category,
		Color:          c.Color(),
		Price:          c.Price,
		RelevanceScore: c.Relevance,
	}
}

// outfitTitle composes a short human-readable outfit name.
func outfitTitle(in intent.Intent, items ...Candidate) string {
	titles := make([]string, len(items))
	for i, c := range items {
		titles[i] = c.Title
	}
	name := strings.Join(titles, " + ")
	if len(in.Occasions) > 0 {
		return fmt.Sprintf("%s look: %s", capitalize(in.Occasions[0]), name)
	}
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// explain composes a one-line style explanation from the matched axes.
func explain(in intent.Intent, items ...Candidate) string {
	var parts []string
	if len(in.Occasions) > 0 {
		parts = append(parts, "suits a "+in.Occasions[0]+" occasion")
	}
	colors := map[string]bool{}
	for _, c := range items {
		if col := c.Color(); col != "" {
			colors[col] = true
		}
	}
	if len(colors) > 0 {
		list := make([]string, 0, len(colors))
		for col := range colors {
			list = append(list, col)
		}
		sort.Strings(list)
		parts = append(parts, "built around "+strings.Join(list, " and "))
	}
	if len(in.Styles) > 0 {
		parts = append(parts, "leaning "+strings.Join(in.Styles, ", "))
	}
	if len(parts) == 0 {
		return "A versatile everyday combination."
	}
	return "This combination " + strings.Join(parts, ", ") + "."
}

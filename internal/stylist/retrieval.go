package stylist

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stylifyapp/stylist/internal/catalog"
	"github.com/stylifyapp/stylist/internal/intent"
)

const (
	// maxFilterTerms caps how many intent terms become filter clauses, to
	// bound query complexity.
	maxFilterTerms = 8

	// overFetchFactor over-fetches relative to the requested count so the
	// scorer has room to re-rank.
	overFetchFactor = 2
)

// Searcher is the catalog capability retrieval depends on.
type Searcher interface {
	Search(ctx context.Context, q catalog.Query) ([]catalog.Item, error)
}

// Retriever runs fuzzy catalog searches for an intent and turns rows into
// corrected, scored candidates.
type Retriever struct {
	store     Searcher
	corrector *Corrector
	scorer    *Scorer
	tables    *Tables
}

// NewRetriever wires a retriever over the store and shared tables.
func NewRetriever(store Searcher, tables *Tables, corrector *Corrector, scorer *Scorer) *Retriever {
	return &Retriever{store: store, corrector: corrector, scorer: scorer, tables: tables}
}

// Retrieve runs the primary fuzzy search for an intent.
func (r *Retriever) Retrieve(ctx context.Context, in intent.Intent, limit int) ([]Candidate, error) {
	q := buildQuery(in, limit)
	items, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("primary retrieval failed: %w", err)
	}
	cands := r.annotate(items, in)

	log.Debug().Int("candidates", len(cands)).Bool("broad", q.Broad).
		Msg("primary retrieval")
	return cands, nil
}

// RetrieveRole runs a role-restricted backfill search: it matches by the
// role's title keywords and category labels, broadened past the original
// intent terms, while keeping the intent's hard constraints (budget, stock).
func (r *Retriever) RetrieveRole(ctx context.Context, in intent.Intent, role Role, limit int) ([]Candidate, error) {
	keywords := r.tables.KeywordsFor(role)
	if len(keywords) == 0 {
		return nil, nil
	}

	q := catalog.Query{Limit: limit * overFetchFactor}
	for _, kw := range keywords {
		q.Any = append(q.Any, catalog.Predicate{Field: "title", Op: catalog.OpLike, Value: kw})
	}
	q.Any = append(q.Any,
		catalog.Predicate{Field: "category", Op: catalog.OpEq, Value: string(role)},
		catalog.Predicate{Field: "vision_category", Op: catalog.OpLike, Value: string(role)},
	)
	q.All = hardFilters(in)

	items, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("backfill retrieval for %s failed: %w", role, err)
	}

	// The title keywords are broad; keep only rows the corrector actually
	// assigns to the requested role.
	var cands []Candidate
	for _, c := range r.annotate(items, in) {
		if c.Role == role {
			cands = append(cands, c)
		}
	}

	log.Debug().Str("role", string(role)).Int("candidates", len(cands)).
		Msg("backfill retrieval")
	return cands, nil
}

// annotate corrects and scores raw catalog rows.
func (r *Retriever) annotate(items []catalog.Item, in intent.Intent) []Candidate {
	cands := make([]Candidate, 0, len(items))
	for _, item := range items {
		visionCategory := ""
		if item.Attrs != nil {
			visionCategory = item.Attrs.Category
		}
		category := item.Category
		if visionCategory != "" {
			category = visionCategory
		}
		breakdown := r.scorer.Score(item, in)
		cands = append(cands, Candidate{
			Item:      item,
			Role:      r.corrector.Correct(item.Title, category),
			Relevance: breakdown.Total,
			Breakdown: breakdown,
		})
	}
	return cands
}

// buildQuery compiles an intent into a disjunctive predicate query. Each of
// the first maxFilterTerms terms filters its own attribute field and the
// product title; budget and stock are hard AND filters. An empty intent
// produces a broad query seeded with the generic casual occasion so that a
// degraded extraction still returns generically relevant stock.
func buildQuery(in intent.Intent, limit int) catalog.Query {
	q := catalog.Query{Limit: limit * overFetchFactor}

	type axisTerm struct {
		field string
		term  string
		exact bool
	}
	var terms []axisTerm
	add := func(field string, values []string, exact bool) {
		for _, v := range values {
			terms = append(terms, axisTerm{field: field, term: v, exact: exact})
		}
	}
	add("occasion", in.Occasions, false)
	add("color", in.Colors, true)
	add("style", in.Styles, false)
	add("material", in.Materials, false)
	add("title", in.Keywords, false)

	if len(terms) > maxFilterTerms {
		terms = terms[:maxFilterTerms]
	}

	for _, t := range terms {
		if t.exact {
			q.Any = append(q.Any,
				catalog.Predicate{Field: t.field, Op: catalog.OpEq, Value: t.term},
				catalog.Predicate{Field: "secondary_color", Op: catalog.OpEq, Value: t.term},
			)
		} else {
			q.Any = append(q.Any, catalog.Predicate{Field: t.field, Op: catalog.OpLike, Value: t.term})
		}
		if t.field != "title" {
			q.Any = append(q.Any, catalog.Predicate{Field: "title", Op: catalog.OpLike, Value: t.term})
		}
	}

	if len(terms) == 0 {
		q.Broad = true
		q.Any = append(q.Any,
			catalog.Predicate{Field: "occasion", Op: catalog.OpEq, Value: FallbackOccasion},
			catalog.Predicate{Field: "title", Op: catalog.OpLike, Value: FallbackOccasion},
		)
	}

	q.All = hardFilters(in)
	return q
}

func hardFilters(in intent.Intent) []catalog.Predicate {
	filters := []catalog.Predicate{
		{Field: "in_stock", Op: catalog.OpEq, Value: 1},
	}
	if in.BudgetMax > 0 {
		filters = append(filters, catalog.Predicate{Field: "price", Op: catalog.OpLte, Value: in.BudgetMax})
	}
	return filters
}

package stylist

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stylifyapp/stylist/internal/intent"
)

// DefaultLimit is the number of outfits returned when the caller does not ask
// for a specific count.
const DefaultLimit = 5

// Request is one recommendation request: the free-text message plus optional
// explicit constraints that override whatever extraction infers.
type Request struct {
	Message   string  `json:"message"`
	BudgetMax float64 `json:"budget_max,omitempty"`
	Size      string  `json:"size,omitempty"`
}

// Service drives the full pipeline: keyword extraction, fuzzy retrieval,
// category correction, scoring, grouping and outfit assembly. Each request is
// one sequential pass; the service holds no per-request state and is safe for
// concurrent use.
type Service struct {
	extractor intent.Extractor
	retriever *Retriever
	assembler *Assembler
	timeout   time.Duration
}

// NewService wires the pipeline components over a catalog store.
func NewService(store Searcher, extractor intent.Extractor, tables *Tables) (*Service, error) {
	corrector, err := NewCorrector(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to build corrector: %w", err)
	}
	retriever := NewRetriever(store, tables, corrector, NewScorer(tables))
	return &Service{
		extractor: extractor,
		retriever: retriever,
		assembler: NewAssembler(tables, retriever),
		timeout:   intent.DefaultTimeout,
	}, nil
}

// Recommend runs the pipeline for one request and returns up to limit ranked
// outfits. Extraction failure degrades to an empty intent; sparse catalog
// data degrades to partial outfits. Only store failure returns an error.
func (s *Service) Recommend(ctx context.Context, req Request, limit int) ([]Outfit, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	in := intent.ExtractWithFallback(ctx, s.extractor, req.Message, s.timeout)
	if req.BudgetMax > 0 {
		in.BudgetMax = req.BudgetMax
	}

	log.Info().
		Strs("keywords", in.Keywords).
		Strs("colors", in.Colors).
		Strs("occasions", in.Occasions).
		Float64("budgetMax", in.BudgetMax).
		Msg("recommendation intent")

	cands, err := s.retriever.Retrieve(ctx, in, limit)
	if err != nil {
		return nil, fmt.Errorf("recommendation failed: %w", err)
	}

	groups := Group(cands)
	outfits := s.assembler.Assemble(ctx, groups, in, limit)

	log.Info().
		Int("candidates", len(cands)).
		Int("outfits", len(outfits)).
		Msg("recommendation assembled")

	return outfits, nil
}

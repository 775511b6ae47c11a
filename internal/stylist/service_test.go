package stylist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylifyapp/stylist/internal/catalog"
	"github.com/stylifyapp/stylist/internal/intent"
)

// scriptedStore returns one canned response per Search call and records the
// queries it received.
type scriptedStore struct {
	responses [][]catalog.Item
	queries   []catalog.Query
	err       error
}

func (s *scriptedStore) Search(_ context.Context, q catalog.Query) ([]catalog.Item, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return nil, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func storeItem(sku, title string, price float64, attrs *catalog.VisionAttributes) catalog.Item {
	return catalog.Item{
		Product: catalog.Product{SKU: sku, Title: title, Price: price, InStock: true, Category: "fashion"},
		Attrs:   attrs,
	}
}

func newTestService(t *testing.T, store Searcher, extractor intent.Extractor) *Service {
	t.Helper()
	svc, err := NewService(store, extractor, DefaultTables())
	require.NoError(t, err)
	return svc
}

func TestRecommendPartyScenario(t *testing.T) {
	store := &scriptedStore{
		responses: [][]catalog.Item{{
			storeItem("TOP-1", "Black Party Top", 1200, &catalog.VisionAttributes{
				SKU: "TOP-1", Color: "black", Occasion: "party", ConfidenceScore: 0.9,
			}),
			storeItem("BOT-1", "Black Satin Skirt", 1500, &catalog.VisionAttributes{
				SKU: "BOT-1", Color: "black", Occasion: "party", ConfidenceScore: 0.9,
			}),
		}},
	}
	svc := newTestService(t, store, intent.NewStaticExtractor())

	outfits, err := svc.Recommend(context.Background(), Request{
		Message:   "something black for a party",
		BudgetMax: 3500,
	}, 5)
	require.NoError(t, err)
	require.Len(t, outfits, 1)

	o := outfits[0]
	assert.Equal(t, OutfitTopBottom, o.Type)
	assert.Equal(t, 2700.0, o.TotalPrice)
	assert.True(t, o.Complete())

	// budget must have been applied as a hard retrieval filter
	require.NotEmpty(t, store.queries)
	var sawBudget bool
	for _, p := range store.queries[0].All {
		if p.Field == "price" && p.Op == catalog.OpLte {
			sawBudget = true
			assert.Equal(t, 3500.0, p.Value)
		}
	}
	assert.True(t, sawBudget)
}

func TestRecommendEmptyIntentFallsBackToCasual(t *testing.T) {
	store := &scriptedStore{
		responses: [][]catalog.Item{{
			storeItem("TOP-1", "Everyday Tee", 20, &catalog.VisionAttributes{SKU: "TOP-1", Occasion: "casual"}),
			storeItem("BOT-1", "Everyday Jeans", 30, &catalog.VisionAttributes{SKU: "BOT-1", Occasion: "casual"}),
		}},
	}
	failing := extractorFunc(func(context.Context, string) (intent.Intent, error) {
		return intent.Intent{}, errors.New("malformed response")
	})
	svc := newTestService(t, store, failing)

	outfits, err := svc.Recommend(context.Background(), Request{Message: "whatever"}, 5)
	require.NoError(t, err, "extraction failure must never surface as a pipeline error")
	require.NotEmpty(t, outfits)

	// degraded intent searches broadly, seeded with the casual fallback
	require.NotEmpty(t, store.queries)
	q := store.queries[0]
	assert.True(t, q.Broad)
	var sawCasual bool
	for _, p := range q.Any {
		if p.Field == "occasion" && p.Value == FallbackOccasion {
			sawCasual = true
		}
	}
	assert.True(t, sawCasual)
}

func TestRecommendBackfillsThenDegradesToPartial(t *testing.T) {
	store := &scriptedStore{
		responses: [][]catalog.Item{
			{
				storeItem("TOP-1", "Black Party Top", 40, &catalog.VisionAttributes{SKU: "TOP-1", Color: "black", Occasion: "party"}),
				storeItem("TOP-2", "Sequin Blouse", 55, &catalog.VisionAttributes{SKU: "TOP-2", Color: "silver", Occasion: "party"}),
			},
			{}, // bottom backfill finds nothing
		},
	}
	svc := newTestService(t, store, intent.NewStaticExtractor())

	outfits, err := svc.Recommend(context.Background(), Request{Message: "party night"}, 5)
	require.NoError(t, err)

	// a second, role-restricted query must have been issued
	require.Len(t, store.queries, 2)
	var sawRolePredicate bool
	for _, p := range store.queries[1].Any {
		if p.Field == "category" && p.Value == string(RoleBottom) {
			sawRolePredicate = true
		}
	}
	assert.True(t, sawRolePredicate)

	// still no bottoms anywhere: partial outfits, not an error or empty list
	require.NotEmpty(t, outfits)
	for _, o := range outfits {
		assert.Equal(t, OutfitPartial, o.Type)
	}
}

func TestRecommendStoreFailureSurfaces(t *testing.T) {
	store := &scriptedStore{err: errors.New("store unreachable")}
	svc := newTestService(t, store, intent.NewStaticExtractor())

	_, err := svc.Recommend(context.Background(), Request{Message: "party"}, 5)
	assert.Error(t, err)
}

func TestRecommendDeterministic(t *testing.T) {
	items := []catalog.Item{
		storeItem("DRS-1", "Black Gown Dress", 100, &catalog.VisionAttributes{SKU: "DRS-1", Color: "black", Occasion: "party"}),
		storeItem("DRS-2", "Red Cocktail Dress", 90, &catalog.VisionAttributes{SKU: "DRS-2", Color: "red", Occasion: "party"}),
	}

	run := func() []Outfit {
		store := &scriptedStore{responses: [][]catalog.Item{items}}
		svc := newTestService(t, store, intent.NewStaticExtractor())
		outfits, err := svc.Recommend(context.Background(), Request{Message: "party dress"}, 5)
		require.NoError(t, err)
		return outfits
	}

	first := run()
	second := run()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Items[0].SKU, second[i].Items[0].SKU)
		assert.Equal(t, first[i].Score, second[i].Score)
		assert.Equal(t, first[i].Type, second[i].Type)
	}
}

// extractorFunc adapts a function to the intent.Extractor interface.
type extractorFunc func(ctx context.Context, message string) (intent.Intent, error)

func (f extractorFunc) Extract(ctx context.Context, message string) (intent.Intent, error) {
	return f(ctx, message)
}

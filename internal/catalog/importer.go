package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Feed is the product-feed document consumed by the importer. The attributes
// list is optional and sparse: entries reference products by SKU.
type Feed struct {
	Products   []Product          `json:"products"`
	Attributes []VisionAttributes `json:"attributes"`
}

// Importer loads product feeds into a Store, either from a local file or over
// HTTP.
type Importer struct {
	store      *Store
	httpClient *resty.Client
}

// NewImporter creates an importer writing into store.
func NewImporter(store *Store) *Importer {
	c := resty.New().
		SetDebug(false).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "outfit-stylist/1.0",
		})
	return &Importer{store: store, httpClient: c}
}

// ImportFile reads a feed JSON file from disk and loads it.
func (im *Importer) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read feed file: %w", err)
	}
	var feed Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return 0, fmt.Errorf("failed to parse feed file: %w", err)
	}
	return im.load(feed)
}

// ImportURL fetches a feed document over HTTP and loads it.
func (im *Importer) ImportURL(ctx context.Context, url string) (int, error) {
	var feed Feed
	resp, err := im.httpClient.NewRequest().
		SetContext(ctx).
		SetResult(&feed).
		Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("feed request failed: %s", resp.Status())
	}
	return im.load(feed)
}

func (im *Importer) load(feed Feed) (int, error) {
	for _, p := range feed.Products {
		if p.SKU == "" {
			log.Warn().Str("title", p.Title).Msg("skipping feed product without sku")
			continue
		}
		if err := im.store.UpsertProduct(p); err != nil {
			return 0, err
		}
	}
	for _, a := range feed.Attributes {
		if a.SKU == "" {
			continue
		}
		if err := im.store.UpsertVisionAttributes(a); err != nil {
			return 0, err
		}
	}

	log.Info().
		Int("products", len(feed.Products)).
		Int("attributes", len(feed.Attributes)).
		Msg("feed imported")

	return len(feed.Products), nil
}

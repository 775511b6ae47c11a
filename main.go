package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stylifyapp/stylist/config"
	"github.com/stylifyapp/stylist/internal/catalog"
	"github.com/stylifyapp/stylist/internal/intent"
	"github.com/stylifyapp/stylist/internal/stylist"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()

	var (
		dbPath     = flag.String("db", envOr("STYLIST_DB_PATH", "catalog.db"), "path to the catalog database")
		tablesPath = flag.String("tables", os.Getenv("STYLIST_TABLES_PATH"), "optional YAML override for lookup tables")
		extractorN = flag.String("extractor", envOr("STYLIST_EXTRACTOR", "gemini"), "keyword extractor: gemini, openai or offline")
		limit      = flag.Int("limit", stylist.DefaultLimit, "number of outfits to return")
		budget     = flag.Float64("budget", 0, "maximum budget for the outfit")
		asJSON     = flag.Bool("json", false, "print outfits as JSON")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	message := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if message == "" {
		fmt.Fprintln(os.Stderr, "usage: stylist [flags] <free-text shopping request>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx := context.Background()

	tables := stylist.DefaultTables()
	if *tablesPath != "" {
		t, err := stylist.LoadTables(*tablesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load lookup tables")
		}
		tables = t
	}

	store, err := catalog.NewStore(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog store")
	}
	defer store.Close()

	extractor, err := buildExtractor(ctx, *extractorN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize keyword extractor")
	}

	svc, err := stylist.NewService(store, extractor, tables)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build recommendation service")
	}

	outfits, err := svc.Recommend(ctx, stylist.Request{Message: message, BudgetMax: *budget}, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("recommendation failed")
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outfits); err != nil {
			log.Fatal().Err(err).Msg("failed to encode outfits")
		}
		return
	}

	printOutfits(outfits)
}

func buildExtractor(ctx context.Context, name string) (intent.Extractor, error) {
	switch name {
	case "gemini":
		if os.Getenv("GEMINI_API_KEY") == "" {
			log.Warn().Msg("GEMINI_API_KEY not set, falling back to offline extractor")
			return intent.NewStaticExtractor(), nil
		}
		return intent.NewGeminiExtractor(ctx)
	case "openai":
		return intent.NewOpenAIExtractor(), nil
	case "offline":
		return intent.NewStaticExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown extractor: %q", name)
	}
}

func printOutfits(outfits []stylist.Outfit) {
	if len(outfits) == 0 {
		fmt.Println("No outfits found.")
		return
	}
	for i, o := range outfits {
		fmt.Printf("%d. %s  [%s, score %.1f, total %.2f]\n", i+1, o.Title, o.Type, o.Score, o.TotalPrice)
		for _, it := range o.Items {
			fmt.Printf("   - %-9s %s (%s, %.2f, relevance %d)\n", it.Role+":", it.Title, it.SKU, it.Price, it.RelevanceScore)
		}
		fmt.Printf("   %s\n", o.StyleExplanation)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

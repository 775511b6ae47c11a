// seed-catalog loads a product feed into the catalog database.
//
// Usage:
//
//	seed-catalog -db catalog.db -file feed.json
//	seed-catalog -db catalog.db -url https://example.com/feed.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stylifyapp/stylist/internal/catalog"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		dbPath = flag.String("db", "catalog.db", "path to the catalog database")
		file   = flag.String("file", "", "path to a feed JSON file")
		url    = flag.String("url", "", "URL of a feed JSON document")
	)
	flag.Parse()

	if (*file == "") == (*url == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -file or -url is required")
		flag.PrintDefaults()
		os.Exit(2)
	}

	store, err := catalog.NewStore(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog store")
	}
	defer store.Close()

	importer := catalog.NewImporter(store)

	var count int
	if *file != "" {
		count, err = importer.ImportFile(*file)
	} else {
		count, err = importer.ImportURL(context.Background(), *url)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	total, err := store.CountProducts()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count products")
	}

	fmt.Printf("imported %d products (%d total in catalog)\n", count, total)
}

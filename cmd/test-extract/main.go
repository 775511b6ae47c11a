// test-extract runs keyword extraction against the configured LLM and prints
// the resulting intent. Useful for iterating on the extraction prompt.
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
	"github.com/stylifyapp/stylist/internal/intent"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()

	offline := flag.Bool("offline", false, "use the offline keyword-table extractor")
	flag.Parse()

	message := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if message == "" {
		fmt.Fprintln(os.Stderr, "usage: test-extract [-offline] <free-text request>")
		os.Exit(2)
	}

	ctx := context.Background()

	var (
		extractor intent.Extractor
		err       error
	)
	if *offline {
		extractor = intent.NewStaticExtractor()
	} else {
		extractor, err = intent.NewGeminiExtractor(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create extractor")
		}
	}

	in := intent.ExtractWithFallback(ctx, extractor, message, intent.DefaultTimeout)

	out, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to marshal intent")
	}
	fmt.Println(string(out))
}

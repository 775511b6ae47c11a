package intent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds one keyword-extraction call.
const DefaultTimeout = 15 * time.Second

// Extractor converts a free-text shopping request into an Intent.
type Extractor interface {
	Extract(ctx context.Context, message string) (Intent, error)
}

// ExtractWithFallback runs one extraction under its own timeout. Any failure
// (timeout, transport, malformed response) degrades to an empty Intent; the
// recommendation pipeline must keep going on whatever the extractor could not
// provide.
func ExtractWithFallback(ctx context.Context, e Extractor, message string, timeout time.Duration) Intent {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	in, err := e.Extract(ctx, message)
	if err != nil {
		log.Warn().Err(err).Str("message", message).
			Msg("keyword extraction failed, proceeding with empty intent")
		return Empty()
	}
	return in
}

// extractJSONObject extracts a JSON object from text that may contain markdown
// code blocks or other formatting. Returns the extracted JSON string or an error.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response: %s", text)
	}
	return text[start : end+1], nil
}

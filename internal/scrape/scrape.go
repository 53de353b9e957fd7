package scrape

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/searxgrab/searxgrab/internal/extract"
	"github.com/searxgrab/searxgrab/internal/fetch"
)

// Scraper fetches a single page and renders its content. Failures never
// propagate: an unreachable or unparseable page becomes a missing result so
// one bad URL cannot abort a batch.
type Scraper struct {
	Fetcher *fetch.Client
	Mode    extract.Mode
}

// Scrape returns the rendered content of url and true, or ("", false) after
// logging a warning when the page could not be retrieved or yielded nothing.
func (s *Scraper) Scrape(ctx context.Context, url string) (string, bool) {
	body, _, err := s.Fetcher.Get(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("fetch failed")
		return "", false
	}
	doc, err := extract.Parse(body)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("parse failed")
		return "", false
	}
	out, err := extract.Render(doc, s.Mode)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("extract failed")
		return "", false
	}
	log.Debug().Str("url", url).Int("chars", len(out)).Msg("scraped page")
	return out, true
}

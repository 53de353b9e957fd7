package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/searxgrab/searxgrab/internal/cache"
	"github.com/searxgrab/searxgrab/internal/extract"
	"github.com/searxgrab/searxgrab/internal/fetch"
	"github.com/searxgrab/searxgrab/internal/scrape"
	"github.com/searxgrab/searxgrab/internal/search"
	"github.com/searxgrab/searxgrab/internal/store"
)

// Record pairs one search result with the content scraped from its URL.
// Text is nil when the page could not be fetched or parsed.
type Record struct {
	Result search.Result `json:"result"`
	Text   *string       `json:"text"`
}

// Scraper is what the pipeline needs from the per-URL scraping step.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, bool)
}

// App wires a search backend and a scraper behind one Run call.
type App struct {
	Cfg      Config
	Searcher search.Searcher
	Scraper  Scraper
}

// New assembles an App from configuration.
func New(cfg Config) (*App, error) {
	var searcher search.Searcher
	if cfg.SearchFile != "" {
		searcher = &search.FileClient{Path: cfg.SearchFile}
	} else {
		base := cfg.SearxURL
		if base == "" {
			base = DefaultSearxURL
		}
		searcher = &search.Client{BaseURL: base, APIKey: cfg.SearxKey, UserAgent: cfg.SearxUA}
	}

	mode, err := extract.ParseMode(cfg.ScrapeMode)
	if err != nil {
		return nil, err
	}
	fc := &fetch.Client{
		UserAgent:   cfg.FetchUA,
		Timeout:     cfg.FetchTimeout,
		BypassCache: cfg.BypassCache,
	}
	if cfg.CacheDir != "" {
		fc.Cache = &cache.PageCache{Dir: cfg.CacheDir, MaxAge: cfg.CacheMaxAge}
	}
	return &App{
		Cfg:      cfg,
		Searcher: searcher,
		Scraper:  &scrape.Scraper{Fetcher: fc, Mode: mode},
	}, nil
}

// Run executes one search, scrapes every result URL sequentially in response
// order, optionally persists the record sequence, and returns it when
// Cfg.ReturnRecords is set. A search failure is fatal to the run; a per-page
// failure only nulls that record's text.
func (a *App) Run(ctx context.Context) ([]Record, error) {
	log.Info().Str("query", a.Cfg.Query).Str("provider", a.Searcher.Name()).Msg("starting search")
	resp, err := a.Searcher.Search(ctx, a.Cfg.Query, a.Cfg.Filters)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	results := resp.Results()
	log.Info().Int("results", len(results)).Msg("search completed")

	records := make([]Record, 0, len(results))
	for _, res := range results {
		var text *string
		if u := res.URL(); u == "" {
			log.Warn().Str("title", res.Title()).Msg("result without url")
		} else if t, ok := a.Scraper.Scrape(ctx, u); ok {
			text = &t
		}
		records = append(records, Record{Result: res, Text: text})
	}

	if a.Cfg.OutputPath != "" {
		if err := store.SaveJSON(a.Cfg.OutputPath, records); err != nil {
			return nil, fmt.Errorf("save records: %w", err)
		}
		log.Info().Str("path", a.Cfg.OutputPath).Int("records", len(records)).Msg("records saved")
	}

	if !a.Cfg.ReturnRecords {
		return nil, nil
	}
	return records, nil
}

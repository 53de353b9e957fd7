package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/searxgrab/searxgrab/internal/app"
	"github.com/searxgrab/searxgrab/internal/search"
	"github.com/searxgrab/searxgrab/internal/store"
)

// exampleQuery keeps a bare `searxgrab` invocation useful against a local
// instance.
const exampleQuery = "Why did the band Jellyfish break up after only two albums in the early nineties?"

// paramFlags collects repeatable -param key=value flags.
type paramFlags map[string]string

func (p paramFlags) String() string {
	pairs := make([]string, 0, len(p))
	for k, v := range p {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (p paramFlags) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	p[k] = val
	return nil
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		query        string
		searxURL     string
		searxKey     string
		searxUA      string
		searchFile   string
		outputPath   string
		noSave       bool
		printRecords bool
		categories   string
		engines      string
		lang         string
		page         int
		timeRange    string
		safeSearch   int
		scrapeMode   string
		fetchTimeout time.Duration
		fetchUA      string
		cacheDir     string
		cacheMaxAge  time.Duration
		cacheBypass  bool
		configPath   string
		verbose      bool
	)
	params := paramFlags{}

	flag.StringVar(&query, "q", "", "Search query (defaults to a built-in example)")
	flag.StringVar(&searxURL, "searx.url", os.Getenv("SEARX_URL"), "SearxNG base URL (default "+app.DefaultSearxURL+")")
	flag.StringVar(&searxKey, "searx.key", os.Getenv("SEARX_KEY"), "SearxNG API key (optional)")
	flag.StringVar(&searxUA, "searx.ua", "", "Custom User-Agent for SearxNG requests")
	flag.StringVar(&searchFile, "search.file", os.Getenv("SEARCH_FILE"), "Path to a canned JSON response for offline runs")
	flag.StringVar(&outputPath, "o", "", "Output path for the JSON records (default derived from the query)")
	flag.BoolVar(&noSave, "no-save", false, "Do not write the records to disk")
	flag.BoolVar(&printRecords, "print", false, "Print the records as JSON to stdout")
	flag.StringVar(&categories, "categories", "", "Comma-separated category filter")
	flag.StringVar(&engines, "engines", "", "Comma-separated engine filter")
	flag.StringVar(&lang, "lang", "", "Language filter, e.g. 'en' or 'auto'")
	flag.IntVar(&page, "page", 0, "Result page number (0 leaves the instance default)")
	flag.StringVar(&timeRange, "time", "", "Time range filter: day, month or year")
	flag.IntVar(&safeSearch, "safesearch", search.NoSafeSearch, "Safe-search level 0..2 (-1 leaves the instance default)")
	flag.Var(params, "param", "Extra query parameter as key=value (repeatable)")
	flag.StringVar(&scrapeMode, "scrape.mode", "", "Scrape output: text, markdown, html or images (default text)")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-page fetch timeout (0 uses the built-in default)")
	flag.StringVar(&fetchUA, "fetch.ua", "", "Custom User-Agent for page fetches")
	flag.StringVar(&cacheDir, "cache.dir", "", "Directory for the on-disk page cache (empty disables caching)")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age before a cached page goes stale (0 disables expiry)")
	flag.BoolVar(&cacheBypass, "cache.bypass", false, "Fetch fresh even when a cache dir is set")
	flag.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		Query:      query,
		SearxURL:   searxURL,
		SearxKey:   searxKey,
		SearxUA:    searxUA,
		SearchFile: searchFile,
		Filters: search.Filters{
			Categories: splitList(categories),
			Engines:    splitList(engines),
			Language:   lang,
			Page:       page,
			TimeRange:  timeRange,
			SafeSearch: safeSearch,
		},
		ScrapeMode:    scrapeMode,
		FetchTimeout:  fetchTimeout,
		FetchUA:       fetchUA,
		CacheDir:      cacheDir,
		CacheMaxAge:   cacheMaxAge,
		BypassCache:   cacheBypass,
		OutputPath:    outputPath,
		ReturnRecords: printRecords,
		Verbose:       verbose,
	}
	if len(params) > 0 {
		cfg.Filters.Extra = params
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.Query == "" {
		cfg.Query = exampleQuery
	}
	if noSave {
		cfg.OutputPath = ""
	} else if cfg.OutputPath == "" {
		cfg.OutputPath = store.SanitizeFilename(cfg.Query, 0) + ".json"
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	records, err := a.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
	if cfg.ReturnRecords {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			log.Fatal().Err(err).Msg("encode records")
		}
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

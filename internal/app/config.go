package app

import (
	"time"

	"github.com/searxgrab/searxgrab/internal/search"
)

// DefaultSearxURL is where a local docker-compose SearxNG instance usually
// listens.
const DefaultSearxURL = "http://localhost:8080"

// Config holds runtime configuration for one run.
type Config struct {
	Query string

	// Search
	SearxURL string
	SearxKey string
	SearxUA  string
	Filters  search.Filters
	// SearchFile replays a canned response from disk instead of contacting
	// a live instance.
	SearchFile string

	// Scraping
	ScrapeMode   string
	FetchTimeout time.Duration
	FetchUA      string

	// Cache
	CacheDir    string
	CacheMaxAge time.Duration
	BypassCache bool

	// Output
	OutputPath    string
	ReturnRecords bool

	Verbose bool
}

package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally onto the flag namespace.
type FileConfig struct {
	Query  string `yaml:"query" json:"query"`
	Output string `yaml:"output" json:"output"`
	Return bool   `yaml:"return" json:"return"`

	Searx struct {
		URL string `yaml:"url" json:"url"`
		Key string `yaml:"key" json:"key"`
		UA  string `yaml:"ua" json:"ua"`
	} `yaml:"searx" json:"searx"`

	Search struct {
		File string `yaml:"file" json:"file"`
	} `yaml:"search" json:"search"`

	Filters struct {
		Categories []string          `yaml:"categories" json:"categories"`
		Engines    []string          `yaml:"engines" json:"engines"`
		Language   string            `yaml:"language" json:"language"`
		Page       int               `yaml:"page" json:"page"`
		TimeRange  string            `yaml:"timeRange" json:"timeRange"`
		SafeSearch *int              `yaml:"safeSearch" json:"safeSearch"`
		Extra      map[string]string `yaml:"extra" json:"extra"`
	} `yaml:"filters" json:"filters"`

	Scrape struct {
		Mode    string        `yaml:"mode" json:"mode"`
		Timeout time.Duration `yaml:"timeout" json:"timeout"`
		UA      string        `yaml:"ua" json:"ua"`
	} `yaml:"scrape" json:"scrape"`

	Cache struct {
		Dir    string        `yaml:"dir" json:"dir"`
		MaxAge time.Duration `yaml:"maxAge" json:"maxAge"`
		Bypass bool          `yaml:"bypass" json:"bypass"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields still
// at their zero value. Flags are parsed first, so explicit flags win over
// file values.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.Query == "" && fc.Query != "" {
		cfg.Query = fc.Query
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if !cfg.ReturnRecords && fc.Return {
		cfg.ReturnRecords = true
	}

	if cfg.SearxURL == "" && fc.Searx.URL != "" {
		cfg.SearxURL = fc.Searx.URL
	}
	if cfg.SearxKey == "" && fc.Searx.Key != "" {
		cfg.SearxKey = fc.Searx.Key
	}
	if cfg.SearxUA == "" && fc.Searx.UA != "" {
		cfg.SearxUA = fc.Searx.UA
	}
	if cfg.SearchFile == "" && fc.Search.File != "" {
		cfg.SearchFile = fc.Search.File
	}

	if len(cfg.Filters.Categories) == 0 && len(fc.Filters.Categories) > 0 {
		cfg.Filters.Categories = append([]string{}, fc.Filters.Categories...)
	}
	if len(cfg.Filters.Engines) == 0 && len(fc.Filters.Engines) > 0 {
		cfg.Filters.Engines = append([]string{}, fc.Filters.Engines...)
	}
	if cfg.Filters.Language == "" && fc.Filters.Language != "" {
		cfg.Filters.Language = fc.Filters.Language
	}
	if cfg.Filters.Page == 0 && fc.Filters.Page > 0 {
		cfg.Filters.Page = fc.Filters.Page
	}
	if cfg.Filters.TimeRange == "" && fc.Filters.TimeRange != "" {
		cfg.Filters.TimeRange = fc.Filters.TimeRange
	}
	if cfg.Filters.SafeSearch < 0 && fc.Filters.SafeSearch != nil {
		cfg.Filters.SafeSearch = *fc.Filters.SafeSearch
	}
	if len(cfg.Filters.Extra) == 0 && len(fc.Filters.Extra) > 0 {
		cfg.Filters.Extra = make(map[string]string, len(fc.Filters.Extra))
		for k, v := range fc.Filters.Extra {
			cfg.Filters.Extra[k] = v
		}
	}

	if cfg.ScrapeMode == "" && fc.Scrape.Mode != "" {
		cfg.ScrapeMode = fc.Scrape.Mode
	}
	if cfg.FetchTimeout == 0 && fc.Scrape.Timeout > 0 {
		cfg.FetchTimeout = fc.Scrape.Timeout
	}
	if cfg.FetchUA == "" && fc.Scrape.UA != "" {
		cfg.FetchUA = fc.Scrape.UA
	}

	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if !cfg.BypassCache && fc.Cache.Bypass {
		cfg.BypassCache = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

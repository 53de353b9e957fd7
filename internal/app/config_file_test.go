package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/searxgrab/searxgrab/internal/search"
)

const sampleYAML = `
query: why is the sky blue
output: sky.json
searx:
  url: http://searx.local:8080
  ua: searxgrab-test/1.0
filters:
  categories: [general, science]
  language: en
  safeSearch: 0
  extra:
    image_proxy: "1"
scrape:
  mode: markdown
cache:
  dir: .cache
verbose: true
`

func TestLoadConfigFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if fc.Query != "why is the sky blue" || fc.Searx.URL != "http://searx.local:8080" {
		t.Fatalf("unexpected config: %+v", fc)
	}
	if fc.Filters.SafeSearch == nil || *fc.Filters.SafeSearch != 0 {
		t.Fatalf("expected safeSearch 0, got %v", fc.Filters.SafeSearch)
	}
	if fc.Filters.Extra["image_proxy"] != "1" {
		t.Fatalf("expected extra param, got %v", fc.Filters.Extra)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"query":"q","searx":{"url":"http://x"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if fc.Query != "q" || fc.Searx.URL != "http://x" {
		t.Fatalf("unexpected config: %+v", fc)
	}
}

func TestApplyFileConfig_FillsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	cfg := Config{Filters: search.Filters{SafeSearch: search.NoSafeSearch}}
	ApplyFileConfig(&cfg, fc)
	if cfg.Query != "why is the sky blue" || cfg.OutputPath != "sky.json" {
		t.Fatalf("unexpected merged config: %+v", cfg)
	}
	if cfg.Filters.SafeSearch != 0 {
		t.Fatalf("expected safeSearch filled from file, got %d", cfg.Filters.SafeSearch)
	}
	if cfg.ScrapeMode != "markdown" || cfg.CacheDir != ".cache" || !cfg.Verbose {
		t.Fatalf("unexpected merged config: %+v", cfg)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	var fc FileConfig
	fc.Query = "from file"
	fc.Searx.URL = "http://file"
	one := 1
	fc.Filters.SafeSearch = &one

	cfg := Config{
		Query:    "from flag",
		SearxURL: "http://flag",
		Filters:  search.Filters{SafeSearch: 2},
	}
	ApplyFileConfig(&cfg, fc)
	if cfg.Query != "from flag" || cfg.SearxURL != "http://flag" || cfg.Filters.SafeSearch != 2 {
		t.Fatalf("file config overrode explicit flags: %+v", cfg)
	}
}

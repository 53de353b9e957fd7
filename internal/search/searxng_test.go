package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Search_PassesMetadataThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query":             "query",
			"number_of_results": 2,
			"results": []map[string]any{
				{"title": "Doc", "url": "https://example.com", "content": "snippet", "engine": "duckduckgo"},
				{"title": "Other", "url": "https://example.org", "positions": []int{1, 2}},
			},
		})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
	got, err := c.Search(context.Background(), "query", Filters{SafeSearch: NoSafeSearch})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	results := got.Results()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].URL() != "https://example.com" {
		t.Fatalf("unexpected url: %q", results[0].URL())
	}
	if results[0].Engine() != "duckduckgo" {
		t.Fatalf("unexpected engine: %q", results[0].Engine())
	}
	// Fields the client does not know about must survive the decode.
	if _, ok := results[1]["positions"]; !ok {
		t.Fatalf("expected passthrough of unknown result fields, got %v", results[1])
	}
	if got["query"] != "query" {
		t.Fatalf("expected top-level query field, got %v", got["query"])
	}
}

func TestClient_Search_AppendsSearchPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/", HTTPClient: srv.Client()}
	if _, err := c.Search(context.Background(), "q", Filters{SafeSearch: NoSafeSearch}); err != nil {
		t.Fatalf("search error: %v", err)
	}
	if gotPath != "/search" {
		t.Fatalf("expected /search path, got %q", gotPath)
	}
}

func TestClient_Search_FilterParamsVerbatim(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	f := Filters{
		Categories: []string{"general", "news"},
		Engines:    []string{"wikipedia"},
		Language:   "en",
		Page:       2,
		TimeRange:  "month",
		SafeSearch: 0,
		Extra:      map[string]string{"image_proxy": "1"},
	}
	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
	if _, err := c.Search(context.Background(), "cats", f); err != nil {
		t.Fatalf("search error: %v", err)
	}

	want := map[string]string{
		"q":           "cats",
		"format":      "json",
		"categories":  "general,news",
		"engines":     "wikipedia",
		"language":    "en",
		"pageno":      "2",
		"time_range":  "month",
		"safesearch":  "0",
		"image_proxy": "1",
	}
	for k, v := range want {
		if len(got[k]) != 1 || got[k][0] != v {
			t.Fatalf("param %q = %v, want %q", k, got[k], v)
		}
	}
}

func TestClient_Search_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
	if _, err := c.Search(context.Background(), "q", Filters{SafeSearch: NoSafeSearch}); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestClient_Search_MissingBaseURL(t *testing.T) {
	c := &Client{}
	if _, err := c.Search(context.Background(), "q", Filters{}); err == nil {
		t.Fatal("expected error without base url")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"auto", "auto"},
		{"en", "en"},
		{"EN-us", "en-US"},
		{"not a tag", "not a tag"},
	}
	for _, c := range cases {
		if got := NormalizeLanguage(c.in); got != c.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

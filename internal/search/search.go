package search

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Response is the JSON body of a SearxNG /search call decoded as a generic
// mapping, so every top-level field the instance returns survives untouched.
type Response map[string]any

// Results returns the ordered result entries. Entries that are not JSON
// objects are skipped.
func (r Response) Results() []Result {
	raw, ok := r["results"].([]any)
	if !ok {
		return nil
	}
	out := make([]Result, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, Result(m))
		}
	}
	return out
}

// Result is a single search hit. SearxNG attaches an open-ended set of
// per-engine metadata; all of it is passed through unmodified.
type Result map[string]any

func (r Result) URL() string    { return r.str("url") }
func (r Result) Title() string  { return r.str("title") }
func (r Result) Engine() string { return r.str("engine") }

func (r Result) str(key string) string {
	v, _ := r[key].(string)
	return v
}

// Filters enumerates the SearxNG query options the client knows about.
// Extra carries arbitrary additional parameters verbatim.
type Filters struct {
	Categories []string
	Engines    []string
	Language   string
	Page       int
	TimeRange  string // day, month or year
	SafeSearch int    // 0..2; negative means unset
	Extra      map[string]string
}

// NoSafeSearch is the unset sentinel for Filters.SafeSearch. Zero is a valid
// level (filtering off), so the field cannot default to it.
const NoSafeSearch = -1

func (f Filters) apply(q url.Values) {
	if len(f.Categories) > 0 {
		q.Set("categories", strings.Join(f.Categories, ","))
	}
	if len(f.Engines) > 0 {
		q.Set("engines", strings.Join(f.Engines, ","))
	}
	if lang := NormalizeLanguage(f.Language); lang != "" {
		q.Set("language", lang)
	}
	if f.Page > 0 {
		q.Set("pageno", strconv.Itoa(f.Page))
	}
	if f.TimeRange != "" {
		q.Set("time_range", f.TimeRange)
	}
	if f.SafeSearch >= 0 {
		q.Set("safesearch", strconv.Itoa(f.SafeSearch))
	}
	for k, v := range f.Extra {
		q.Set(k, v)
	}
}

// NormalizeLanguage canonicalizes a BCP 47 tag ("EN-us" -> "en-US"). The
// special value "auto" and anything unparseable pass through as supplied,
// since the instance is the final authority on what it accepts.
func NormalizeLanguage(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return s
	}
	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	return tag.String()
}

// Searcher is the minimal interface the pipeline needs from a search backend.
type Searcher interface {
	Search(ctx context.Context, query string, f Filters) (Response, error)
	Name() string
}

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// SaveJSON writes v to path as indented JSON, replacing any existing file.
// The write goes through a temp file so a crash cannot leave a torn output.
func SaveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	b = append(b, '\n')
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

// LoadJSON reads the JSON file at path into v.
func LoadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

var nonFilenameRune = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeFilename turns a free-text query into a safe filename stem,
// truncated to max bytes (50 when max <= 0).
func SanitizeFilename(query string, max int) string {
	if max <= 0 {
		max = 50
	}
	s := nonFilenameRune.ReplaceAllString(query, "_")
	if len(s) > max {
		s = s[:max]
	}
	return s
}

var (
	schemePrefix = regexp.MustCompile(`^https?://(www\.)?`)
	nonURLRune   = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// FilenameFromURL derives a filename from a URL: scheme and leading www
// dropped, every other non-alphanumeric run replaced by a hyphen, ext
// appended (ext includes the dot).
func FilenameFromURL(rawURL, ext string) string {
	s := schemePrefix.ReplaceAllString(rawURL, "")
	s = nonURLRune.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s + ext
}

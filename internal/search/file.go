package search

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
)

// FileClient replays a canned /search response from a local JSON file, for
// offline runs and tests. The file holds a full response body, i.e. at least
// {"results": [{"url": "..."}]}.
type FileClient struct {
	Path string
}

func (f *FileClient) Name() string { return "file" }

func (f *FileClient) Search(_ context.Context, _ string, _ Filters) (Response, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file search path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var out Response
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

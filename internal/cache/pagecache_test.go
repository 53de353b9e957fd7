package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPageCache_SaveLoad(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	ctx := context.Background()

	if err := c.Save(ctx, "http://example.com/a", "text/html", []byte("<html>a</html>")); err != nil {
		t.Fatalf("save error: %v", err)
	}
	body, ct, err := c.Load(ctx, "http://example.com/a")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if string(body) != "<html>a</html>" || ct != "text/html" {
		t.Fatalf("unexpected entry: %q %q", body, ct)
	}
}

func TestPageCache_MissOnUnknownURL(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	if _, _, err := c.Load(context.Background(), "http://nowhere.test"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestPageCache_StaleEntryIsMiss(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	c := &PageCache{Dir: t.TempDir(), MaxAge: time.Hour, now: func() time.Time { return current }}
	ctx := context.Background()

	if err := c.Save(ctx, "http://example.com/b", "text/html", []byte("b")); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if _, _, err := c.Load(ctx, "http://example.com/b"); err != nil {
		t.Fatalf("fresh load error: %v", err)
	}

	current = base.Add(2 * time.Hour)
	if _, _, err := c.Load(ctx, "http://example.com/b"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss for stale entry, got %v", err)
	}
}

func TestPageCache_SaveOverwrites(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	ctx := context.Background()

	if err := c.Save(ctx, "http://example.com/c", "text/html", []byte("old")); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if err := c.Save(ctx, "http://example.com/c", "text/html; charset=utf-8", []byte("new")); err != nil {
		t.Fatalf("second save error: %v", err)
	}
	body, ct, err := c.Load(ctx, "http://example.com/c")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if string(body) != "new" || ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected entry after overwrite: %q %q", body, ct)
	}
}

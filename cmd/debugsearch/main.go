package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/searxgrab/searxgrab/internal/search"
)

func main() {
	base := os.Getenv("SEARX_URL")
	if base == "" { base = "http://localhost:8080" }
	q := "What is love?"
	if len(os.Args) > 1 { q = os.Args[1] }
	client := &http.Client{ Timeout: 20 * time.Second }
	prov := &search.Client{BaseURL: base, HTTPClient: client, UserAgent: "debugsearch/1.0"}
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	resp, err := prov.Search(ctx, q, search.Filters{SafeSearch: search.NoSafeSearch})
	fmt.Println("err:", err)
	for i, r := range resp.Results() {
		fmt.Printf("%d. %s — %s (%s)\n", i+1, r.Title(), r.URL(), r.Engine())
	}
}

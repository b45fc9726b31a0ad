package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedResult is a fetched feed with its fresh validators
type FeedResult struct {
	NotModified bool
	ETag        string
	Modified    string
	Items       []*gofeed.Item
}

// HasValidators report whether the response carried etag or last modified
func (r *FeedResult) HasValidators() bool {
	return r.ETag != "" || r.Modified != ""
}

// Fetcher retrieves a feed using stored validators
type Fetcher interface {
	Fetch(ctx context.Context, feedURL, etag, modified string) (*FeedResult, error)
}

// HTTPFetcher is conditional fetcher over http
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	parser    *gofeed.Parser
}

// NewHTTPFetcher return fetcher with a timeout per request
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		parser:    gofeed.NewParser(),
	}
}

// Fetch return feed, NotModified is set on 304
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL, etag, modified string) (*FeedResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if modified != "" {
		req.Header.Set("If-Modified-Since", modified)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed '%s': %v: %w", feedURL, err, ErrFetch)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return &FeedResult{NotModified: true}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to get feed '%s': status %d: %w", feedURL, resp.StatusCode, ErrFetch)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed '%s': %v: %w", feedURL, err, ErrMalformed)
	}
	return &FeedResult{
		ETag:     resp.Header.Get("ETag"),
		Modified: resp.Header.Get("Last-Modified"),
		Items:    feed.Items,
	}, nil
}

package extract

import (
	"context"
	"time"

	"github.com/naozine/nz-html-fetch/pkg/htmlfetch"

	"github.com/jinchangsung/safetyspeak2/internal/stage"
)

// WebExtractor fetches web pages and converts them to markdown text.
type WebExtractor struct {
	fetcher *htmlfetch.Fetcher
}

// WebOptions configures the browser-backed fetcher.
type WebOptions struct {
	Stealth     bool   // Bot-detection avoidance
	Proxy       string // Proxy address
	BrowserPath string // Browser binary path
}

// NewWebExtractor creates a WebExtractor and starts its browser.
func NewWebExtractor(opts *WebOptions) (*WebExtractor, error) {
	var fetcherOpts []htmlfetch.Option

	if opts != nil {
		if opts.BrowserPath != "" {
			fetcherOpts = append(fetcherOpts, htmlfetch.WithBrowserPath(opts.BrowserPath))
		}
		if opts.Proxy != "" {
			fetcherOpts = append(fetcherOpts, htmlfetch.WithProxy(opts.Proxy))
		}
		fetcherOpts = append(fetcherOpts, htmlfetch.WithStealth(opts.Stealth))
	}

	fetcher := htmlfetch.New(fetcherOpts...)
	if err := fetcher.Start(); err != nil {
		return nil, err
	}

	return &WebExtractor{fetcher: fetcher}, nil
}

// Close shuts down the browser.
func (e *WebExtractor) Close() error {
	if e.fetcher != nil {
		return e.fetcher.Close()
	}
	return nil
}

// fetchTimeout bounds a single page fetch. The extractor owns its own
// timeout policy; callers never impose one.
const fetchTimeout = 30 * time.Second

// Extract fetches the page and returns its markdown rendering.
func (e *WebExtractor) Extract(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	fetchOpts := []htmlfetch.FetchOption{
		htmlfetch.WithMarkdown(),
		htmlfetch.WithBlocking(htmlfetch.BlockingOptions{Ads: true, Image: true}),
	}

	result, err := e.fetcher.Fetch(ctx, url, fetchOpts...)
	if err != nil {
		return "", &stage.ExtractionError{Detail: url, Err: err}
	}
	return result.Markdown, nil
}

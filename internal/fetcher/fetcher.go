// Package fetcher retrieves raw page content for tracked items, optionally
// narrowed to a CSS-selected subtree.
package fetcher

import (
	"errors"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/shoetracker/helpers"
	"sjsage522/shoetracker/logger"
	apperrors "sjsage522/shoetracker/pkg/errors"
	"sjsage522/shoetracker/services/cache"
)

// Fetcher retrieves page content over HTTP with browser-like headers.
// An optional gate skips hosts that recently rate-limited us.
type Fetcher struct {
	timeout time.Duration
	gate    *cache.Gate
	log     *logger.Logger
}

// New creates a Fetcher. gate may be nil when no memcache is configured.
func New(timeout time.Duration, gate *cache.Gate) *Fetcher {
	return &Fetcher{
		timeout: timeout,
		gate:    gate,
		log:     logger.ForFetcher(),
	}
}

// Fetch returns the page content for url. When selector is non-empty the
// result is the inner HTML of the first matching element; a selector that
// matches nothing falls back to the full body with a warning, an explicit
// policy choice so a stale selector degrades gracefully instead of hiding
// the page.
func (f *Fetcher) Fetch(url, selector string) (string, error) {
	if f.gate.Blocked(url) {
		return "", apperrors.NewNetwork("fetcher", "host is rate-limit blocked, skipping "+url, nil)
	}

	body, err := helpers.FetchWithBrowserHeaders(url, f.timeout)
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) {
			if gateErr := f.gate.Block(url); gateErr != nil {
				f.log.Warn().Err(gateErr).Msg("Failed to set rate-limit gate")
			}
		}
		return "", apperrors.NewNetwork("fetcher", "failed to fetch "+url, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", apperrors.NewNetwork("fetcher", "failed to parse HTML from "+url, err)
	}

	if selector != "" {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			if html, err := sel.Html(); err == nil {
				f.log.Debug().Str("selector", selector).Int("chars", len(html)).Msg("Selector matched")
				return html, nil
			}
		}
		f.log.Warn().Str("selector", selector).Str("url", url).Msg("Selector matched nothing, falling back to full body")
	}

	html, err := doc.Find("body").Html()
	if err != nil || html == "" {
		// Pages without an explicit body still carry content
		return doc.Text(), nil
	}
	return html, nil
}

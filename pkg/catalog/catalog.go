// Package catalog pages through the icon catalog for a style or search term.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"icons8dl/pkg/icons8"
	"icons8dl/pkg/logger"
)

// ErrEmptyFilter is returned when neither a style nor a query was given
var ErrEmptyFilter = errors.New("at least one of style or query is required")

// Filter selects which icons to fetch
type Filter struct {
	Style string
	Query string
}

// Validate requires at least one of Style or Query
func (f Filter) Validate() error {
	if f.Style == "" && f.Query == "" {
		return ErrEmptyFilter
	}
	return nil
}

// PageObserver is notified after each page is appended to the result
type PageObserver interface {
	PageFetched(total int)
}

// PageObserverFunc adapts a function to PageObserver
type PageObserverFunc func(total int)

func (f PageObserverFunc) PageFetched(total int) { f(total) }

// PageClient fetches and validates a single catalog page
type PageClient interface {
	FetchPage(ctx context.Context, url string) ([]byte, *icons8.IconsResponse, error)
}

// ResponseCache stores raw page bodies by URL
type ResponseCache interface {
	Read(url string) ([]byte, bool)
	Write(url string, body []byte)
}

// Options tunes the catalog request parameters
type Options struct {
	BaseURL   string
	Language  string
	SortBy    string
	IncludeAI bool
	PageSize  int
}

// DefaultOptions mirrors the parameters the public site uses
func DefaultOptions() Options {
	return Options{
		BaseURL:   icons8.DefaultCatalogURL,
		Language:  icons8.DefaultLanguage,
		SortBy:    icons8.DefaultSortBy,
		IncludeAI: true,
		PageSize:  icons8.PageSize,
	}
}

// Fetcher walks the catalog sequentially, one page at a time
type Fetcher struct {
	client PageClient
	cache  ResponseCache
	opts   Options
	logger logger.Logger
}

// NewFetcher creates a Fetcher. cache may be nil to always hit the network.
// Zero fields in opts fall back to DefaultOptions.
func NewFetcher(client PageClient, cache ResponseCache, opts Options, log logger.Logger) *Fetcher {
	defaults := DefaultOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = defaults.BaseURL
	}
	if opts.Language == "" {
		opts.Language = defaults.Language
	}
	if opts.SortBy == "" {
		opts.SortBy = defaults.SortBy
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaults.PageSize
	}
	return &Fetcher{
		client: client,
		cache:  cache,
		opts:   opts,
		logger: logger.OrNop(log),
	}
}

// PageURL returns the request URL for the page at offset
func (f *Fetcher) PageURL(filter Filter, offset int) string {
	return icons8.CatalogURL(f.opts.BaseURL, icons8.CatalogQuery{
		Amount:    f.opts.PageSize,
		Offset:    offset,
		IncludeAI: f.opts.IncludeAI,
		Language:  f.opts.Language,
		SortBy:    f.opts.SortBy,
		Style:     filter.Style,
		Term:      filter.Query,
	})
}

// FetchAll returns every icon matching filter in server order.
//
// Paging stops when the server reports success=false (the icons gathered so far
// are returned without error), when a page is empty, or after a short page.
// Any transport, status or schema error aborts the walk.
func (f *Fetcher) FetchAll(ctx context.Context, filter Filter, observer PageObserver) ([]icons8.Icon, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var icons []icons8.Icon
	for offset := 0; ; offset += f.opts.PageSize {
		page, err := f.fetchPage(ctx, f.PageURL(filter, offset))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog page at offset %d: %w", offset, err)
		}

		if !page.Success {
			f.logger.WarnWithFields("Catalog reported an unsuccessful response, stopping", map[string]interface{}{
				"offset": offset,
				"total":  len(icons),
			})
			return icons, nil
		}

		if len(page.Icons) == 0 {
			break
		}

		icons = append(icons, page.Icons...)
		f.logger.DebugWithFields("Fetched catalog page", map[string]interface{}{
			"offset": offset,
			"count":  len(page.Icons),
			"total":  len(icons),
		})
		if observer != nil {
			observer.PageFetched(len(icons))
		}

		if len(page.Icons) < f.opts.PageSize {
			break
		}
	}

	f.logger.InfoWithFields("Catalog fetch complete", map[string]interface{}{
		"style": filter.Style,
		"query": filter.Query,
		"total": len(icons),
	})
	return icons, nil
}

// fetchPage serves a page from the cache when it holds a valid copy, otherwise
// from the network, persisting the raw body only after it validates.
func (f *Fetcher) fetchPage(ctx context.Context, url string) (*icons8.IconsResponse, error) {
	if f.cache != nil {
		if body, ok := f.cache.Read(url); ok {
			page, err := icons8.DecodeIconsResponse(body)
			if err == nil {
				f.logger.WithField("url", url).Debug("Catalog page served from cache")
				return page, nil
			}
			f.logger.WarnWithFields("Cached page failed validation, refetching", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
		}
	}

	body, page, err := f.client.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Write(url, body)
	}
	return page, nil
}

package scraper

import (
	"context"

	"icons8dl/internal/downloader"
	"icons8dl/pkg/catalog"
	"icons8dl/pkg/icons8"
	"icons8dl/pkg/storage"
)

// CatalogFetcher lists every icon matching a filter
type CatalogFetcher interface {
	FetchAll(ctx context.Context, filter catalog.Filter, observer catalog.PageObserver) ([]icons8.Icon, error)
}

// FilenameResolver assigns each icon a collision-free destination path
type FilenameResolver interface {
	Resolve(icons []icons8.Icon) (storage.FilenameMap, error)
}

// IconExecutor downloads resolved icons
type IconExecutor interface {
	Run(ctx context.Context, icons []icons8.Icon, names storage.FilenameMap, size int, observer downloader.Observer) downloader.Summary
}

// Observer follows a whole run: catalog pages, the switch to downloading, and
// each finished icon. Calls never overlap.
type Observer interface {
	catalog.PageObserver
	downloader.Observer
	DownloadStarted(total int)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) PageFetched(int)                    {}
func (NopObserver) DownloadStarted(int)                {}
func (NopObserver) IconDone(downloader.DownloadResult) {}

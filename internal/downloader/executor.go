package downloader

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"icons8dl/pkg/icons8"
	"icons8dl/pkg/logger"
	"icons8dl/pkg/storage"
)

// DefaultWorkers is the number of concurrent downloads when none is configured
const DefaultWorkers = 10

// Summary counts the outcome of a download run. Succeeded+Failed always equals
// the number of icons handed to Run.
type Summary struct {
	Succeeded int
	Failed    int
}

// Observer is told about every finished icon, once per icon, from a single goroutine
type Observer interface {
	IconDone(result DownloadResult)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(result DownloadResult)

func (f ObserverFunc) IconDone(result DownloadResult) { f(result) }

// Options configures an Executor
type Options struct {
	ImageURL string
	Workers  int
}

// Executor downloads a resolved set of icons with bounded concurrency
type Executor struct {
	client  IconDownloader
	storage IconStorage
	opts    Options
	logger  logger.Logger
}

// NewExecutor creates an Executor. Zero options fall back to the public image
// endpoint and DefaultWorkers.
func NewExecutor(client IconDownloader, store IconStorage, opts Options, log logger.Logger) *Executor {
	if opts.ImageURL == "" {
		opts.ImageURL = icons8.DefaultImageURL
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Executor{
		client:  client,
		storage: store,
		opts:    opts,
		logger:  logger.OrNop(log),
	}
}

// Run downloads every icon at size into the path names assigns to it.
//
// A failure for one icon (transport, HTTP status, file I/O, or an icon with no
// entry in names) is logged and counted and never affects the others. observer
// may be nil.
func (e *Executor) Run(ctx context.Context, icons []icons8.Icon, names storage.FilenameMap, size int, observer Observer) Summary {
	var summary Summary
	if len(icons) == 0 {
		return summary
	}

	start := time.Now()
	pool := NewWorkerPool(ctx, e.opts.Workers, e.client, e.storage, e.logger)
	pool.Start()

	var rejected []DownloadResult
	record := func(result DownloadResult) {
		if result.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		if observer != nil {
			observer.IconDone(result)
		}
	}

	var g errgroup.Group

	// Submitter
	g.Go(func() error {
		defer pool.Stop()
		for _, icon := range icons {
			job := DownloadJob{
				Icon: icon,
				URL:  icons8.ImageURL(e.opts.ImageURL, icon.ID, size),
				Path: names[icon.ID],
			}
			if err := pool.Submit(job); err != nil {
				rejected = append(rejected, DownloadResult{Job: job, Error: err})
			}
		}
		return nil
	})

	// Collector; sole owner of summary until Wait returns
	g.Go(func() error {
		for result := range pool.Results() {
			record(result)
		}
		return nil
	})

	_ = g.Wait()

	for _, result := range rejected {
		logger.LogDownload(e.logger, result.Job.Icon.ID, result.Job.Icon.Name, result.Job.Path, result.Error)
		record(result)
	}

	logger.LogMetrics(e.logger, "download", map[string]interface{}{
		"total":     len(icons),
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"workers":   e.opts.Workers,
		"size":      size,
		"duration":  time.Since(start),
	})
	return summary
}

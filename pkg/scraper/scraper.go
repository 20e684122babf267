package scraper

import (
	"context"
	"fmt"
	"time"

	"icons8dl/internal/downloader"
	"icons8dl/pkg/cache"
	"icons8dl/pkg/catalog"
	"icons8dl/pkg/config"
	"icons8dl/pkg/icons8"
	"icons8dl/pkg/logger"
	"icons8dl/pkg/metadata"
	"icons8dl/pkg/storage"
)

// Options controls a download run
type Options struct {
	Size           int
	TargetDir      string
	SaveMetadata   bool
	MetadataFormat string
}

// Report is the outcome of DownloadIcons
type Report struct {
	Filter       catalog.Filter
	Total        int
	Succeeded    int
	Failed       int
	TargetDir    string
	Duration     time.Duration
	Filenames    storage.FilenameMap
	ManifestPath string
}

// Scraper runs the three phases of a download: fetch the catalog, resolve
// file names, download. Each phase finishes before the next begins.
type Scraper struct {
	fetcher  CatalogFetcher
	resolver FilenameResolver
	executor IconExecutor
	opts     Options
	logger   logger.Logger
	now      func() time.Time
}

// New assembles a Scraper from its parts
func New(fetcher CatalogFetcher, resolver FilenameResolver, executor IconExecutor, opts Options, log logger.Logger) *Scraper {
	return &Scraper{
		fetcher:  fetcher,
		resolver: resolver,
		executor: executor,
		opts:     opts,
		logger:   logger.OrNop(log),
		now:      time.Now,
	}
}

// NewFromConfig wires the HTTP client, response cache, catalog fetcher,
// storage manager and download executor described by cfg.
func NewFromConfig(cfg *config.Config, log logger.Logger) (*Scraper, error) {
	log = logger.OrNop(log)

	client := icons8.NewClient(cfg.API.Timeout, cfg.API.UserAgent, log.WithField("component", "http"))

	var responseCache catalog.ResponseCache
	if cfg.Cache.Enabled {
		responseCache = cache.New(cfg.Cache.Dir, log.WithField("component", "cache"))
	}

	fetcher := catalog.NewFetcher(client, responseCache, catalog.Options{
		BaseURL:   cfg.API.CatalogURL,
		Language:  cfg.API.Language,
		SortBy:    cfg.API.SortBy,
		IncludeAI: cfg.API.IncludeAI,
	}, log.WithField("component", "catalog"))

	manager, err := storage.NewManager(cfg.Output.TargetDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage manager: %w", err)
	}

	// Image downloads get their own timeout
	imageClient := client
	if cfg.Download.Timeout != cfg.API.Timeout {
		imageClient = icons8.NewClient(cfg.Download.Timeout, cfg.API.UserAgent, log.WithField("component", "http"))
	}

	executor := downloader.NewExecutor(imageClient, manager, downloader.Options{
		ImageURL: cfg.API.ImageURL,
		Workers:  cfg.Download.Concurrency,
	}, log.WithField("component", "downloader"))

	return New(fetcher, manager, executor, Options{
		Size:           cfg.Download.Size,
		TargetDir:      manager.GetOutputDir(),
		SaveMetadata:   cfg.Output.SaveMetadata,
		MetadataFormat: cfg.Output.MetadataFormat,
	}, log), nil
}

// DownloadIcons fetches every icon matching filter and downloads it into the
// target directory. A catalog or resolution failure aborts the run with an
// error; individual download failures are only counted in the report.
func (s *Scraper) DownloadIcons(ctx context.Context, filter catalog.Filter, observer Observer) (*Report, error) {
	if observer == nil {
		observer = NopObserver{}
	}
	start := s.now()
	report := &Report{Filter: filter, TargetDir: s.opts.TargetDir}

	logger.LogComponentStart(s.logger, "scraper", map[string]interface{}{
		"style":      filter.Style,
		"query":      filter.Query,
		"size":       s.opts.Size,
		"target_dir": s.opts.TargetDir,
	})

	icons, err := s.fetcher.FetchAll(ctx, filter, observer)
	if err != nil {
		s.logger.WithError(err).Error("Catalog fetch failed")
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	icons = dedupe(icons, s.logger)
	report.Total = len(icons)
	if len(icons) == 0 {
		s.logger.Warn("No icons matched the filter")
		report.Duration = s.now().Sub(start)
		logger.LogComponentStop(s.logger, "scraper", "nothing to download")
		return report, nil
	}

	names, err := s.resolver.Resolve(icons)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file names: %w", err)
	}
	report.Filenames = names

	var manifest *metadata.Manifest
	if s.opts.SaveMetadata {
		manifest = metadata.New(filter.Style, filter.Query, s.opts.Size, s.opts.TargetDir, start)
	}

	observer.DownloadStarted(len(icons))
	summary := s.executor.Run(ctx, icons, names, s.opts.Size, downloader.ObserverFunc(func(result downloader.DownloadResult) {
		if manifest != nil {
			manifest.Add(result.Job.Icon, result.Job.Path, result.Size, result.Error)
		}
		observer.IconDone(result)
	}))

	report.Succeeded = summary.Succeeded
	report.Failed = summary.Failed

	if manifest != nil {
		manifest.Sort()
		path, err := manifest.Save(s.opts.TargetDir, s.opts.MetadataFormat)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to write manifest")
		} else {
			report.ManifestPath = path
		}
	}

	report.Duration = s.now().Sub(start)
	s.logger.InfoWithFields("Download run finished", map[string]interface{}{
		"total":     report.Total,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"duration":  report.Duration,
	})
	logger.LogComponentStop(s.logger, "scraper", "completed")
	return report, nil
}

// dedupe drops repeated icon ids, keeping the first occurrence
func dedupe(icons []icons8.Icon, log logger.Logger) []icons8.Icon {
	seen := make(map[string]struct{}, len(icons))
	out := icons[:0:0]
	for _, icon := range icons {
		if _, ok := seen[icon.ID]; ok {
			continue
		}
		seen[icon.ID] = struct{}{}
		out = append(out, icon)
	}
	if dropped := len(icons) - len(out); dropped > 0 {
		log.WarnWithFields("Dropped duplicate icons from catalog", map[string]interface{}{
			"duplicates": dropped,
		})
	}
	return out
}

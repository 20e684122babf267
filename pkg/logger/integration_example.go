package logger

// This file shows how the logger is threaded through the application

/*
Example integration in the download command:

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, changedFlags(cmd))
	if err != nil {
		return err
	}

	// The run log goes into the target directory unless a file is configured
	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(cfg.Output.TargetDirectory, logger.RunLogFileName(time.Now()))
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close(log)

	log.WithFields(map[string]interface{}{
		"style": filter.Style,
		"query": filter.Query,
		"size":  cfg.Download.Size,
	}).Info("icons8dl starting")

	// Every component receives the logger explicitly
	s, err := scraper.NewFromConfig(cfg, log)
	...
}
*/

// Example integration in a component:
/*
func NewFetcher(client PageClient, cache ResponseCache, opts Options, log logger.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		cache:  cache,
		opts:   opts,
		logger: logger.OrNop(log), // nil means "don't log"
	}
}

func (f *Fetcher) fetchPage(ctx context.Context, url string) (*icons8.IconsResponse, error) {
	if body, ok := f.cache.Read(url); ok {
		f.logger.WithField("url", url).Debug("Catalog page served from cache")
		...
	}
	...
}
*/

// Example per-icon logging in a worker:
/*
	logger.LogDownload(wp.logger.WithField("worker_id", workerID), job.Icon.ID, job.Icon.Name, job.Path, result.Error)
*/

// Example in tests:
/*
	log := logger.NewTestLogger()
	exec := downloader.NewExecutor(client, store, downloader.Options{Workers: 3}, log)
	exec.Run(ctx, icons, names, 96, nil)
	assert.True(t, log.HasMessage("Icon download failed"))
*/

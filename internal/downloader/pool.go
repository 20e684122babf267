package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"icons8dl/pkg/icons8"
	"icons8dl/pkg/logger"
)

// ErrPoolStopped is returned by Submit once the pool can no longer accept jobs
var ErrPoolStopped = errors.New("worker pool is shutting down")

// DownloadJob is a single icon to fetch and the path it must be written to
type DownloadJob struct {
	Icon icons8.Icon
	URL  string
	Path string
}

// DownloadResult represents the result of a download job
type DownloadResult struct {
	Job      DownloadJob
	Success  bool
	Error    error
	Duration time.Duration
	Size     int64
}

// IconDownloader opens an icon image for streaming
type IconDownloader interface {
	OpenImage(ctx context.Context, url string) (io.ReadCloser, error)
}

// IconStorage writes an icon stream to its final path
type IconStorage interface {
	SaveIcon(r io.Reader, path string) (int64, error)
}

// WorkerPool runs a fixed number of download workers fed from a job channel.
// Every submitted job produces exactly one result.
type WorkerPool struct {
	numWorkers     int
	jobQueue       chan DownloadJob
	resultQueue    chan DownloadResult
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
	client         IconDownloader
	storageManager IconStorage
	logger         logger.Logger
}

// NewWorkerPool creates a new download worker pool. Requests inherit ctx.
func NewWorkerPool(
	ctx context.Context,
	numWorkers int,
	client IconDownloader,
	storageManager IconStorage,
	log logger.Logger,
) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		numWorkers:     numWorkers,
		jobQueue:       make(chan DownloadJob, numWorkers*2),
		resultQueue:    make(chan DownloadResult, numWorkers),
		ctx:            ctx,
		cancel:         cancel,
		client:         client,
		storageManager: storageManager,
		logger:         logger.OrNop(log),
	}
}

// Start launches the workers
func (wp *WorkerPool) Start() {
	wp.logger.DebugWithFields("Starting worker pool", map[string]interface{}{
		"num_workers": wp.numWorkers,
	})

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop closes the job queue, waits for in-flight jobs and closes the result channel.
// It must be called exactly once, after the last Submit.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()

	wp.logger.Debug("Worker pool stopped")
}

// Submit queues a job, blocking while the queue is full
func (wp *WorkerPool) Submit(job DownloadJob) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return ErrPoolStopped
	}
}

// Results returns the channel of finished jobs. It is closed by Stop.
func (wp *WorkerPool) Results() <-chan DownloadResult {
	return wp.resultQueue
}

// GetActiveWorkers returns the number of workers
func (wp *WorkerPool) GetActiveWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobQueue {
		wp.resultQueue <- wp.processJob(job, id)
	}
}

// processJob downloads and stores one icon. It never panics and never returns
// without a result.
func (wp *WorkerPool) processJob(job DownloadJob, workerID int) (result DownloadResult) {
	start := time.Now()
	result = DownloadResult{Job: job}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Error = fmt.Errorf("download panicked: %v", r)
		}
		result.Duration = time.Since(start)
		logger.LogDownload(wp.logger.WithField("worker_id", workerID), job.Icon.ID, job.Icon.Name, job.Path, result.Error)
	}()

	if job.Path == "" {
		result.Error = fmt.Errorf("no file name resolved for icon %s", job.Icon.ID)
		return result
	}

	body, err := wp.client.OpenImage(wp.ctx, job.URL)
	if err != nil {
		result.Error = fmt.Errorf("download failed: %w", err)
		return result
	}
	defer body.Close()

	size, err := wp.storageManager.SaveIcon(body, job.Path)
	if err != nil {
		result.Error = fmt.Errorf("save failed: %w", err)
		return result
	}

	result.Size = size
	result.Success = true
	return result
}

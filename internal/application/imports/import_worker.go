package imports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type ImportSource interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

type importWorkerJobRepo interface {
	ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error)
	Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error
	BeginWrites(ctx context.Context, jobID string) error
	UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error
	Complete(ctx context.Context, jobID string, summary domain.ImportSummary) error
	Requeue(ctx context.Context, jobID string, reason string) error
	Fail(ctx context.Context, jobID string, reason string, summary domain.ImportSummary) error
}

type batchRunner interface {
	Run(ctx context.Context, in RunInput, progress ProgressFunc) (ImportResult, error)
}

type ImportWorkerConfig struct {
	Workers           int
	PollInterval      time.Duration
	LeaseDuration     time.Duration
	HeartbeatInterval time.Duration
	ProgressEvery     int
	CompleteAttempts  int
	RetryDelay        time.Duration
}

// ImportWorker runs queued import jobs. Jobs are processed concurrently,
// the rows of one job strictly in order.
type ImportWorker struct {
	repo    importWorkerJobRepo
	source  ImportSource
	decoder TableDecoder
	runner  batchRunner
	cfg     ImportWorkerConfig
	logger  *zap.Logger

	once sync.Once
}

func NewImportWorker(
	repo importWorkerJobRepo,
	source ImportSource,
	decoder TableDecoder,
	runner batchRunner,
	cfg ImportWorkerConfig,
	logger *zap.Logger,
) *ImportWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 10
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.LeaseDuration <= 0 {
		cfg.LeaseDuration = 60 * time.Second
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = cfg.LeaseDuration / 2
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 100
	}
	if cfg.CompleteAttempts <= 0 {
		cfg.CompleteAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImportWorker{
		repo:    repo,
		source:  source,
		decoder: decoder,
		runner:  runner,
		cfg:     cfg,
		logger:  logger,
	}
}

func (w *ImportWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		for i := 0; i < w.cfg.Workers; i++ {
			go w.workerLoop(ctx)
		}
	})
}

func (w *ImportWorker) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.repo.ClaimNext(ctx, w.cfg.LeaseDuration)
		if err != nil {
			w.logger.Warn("claim next import job failed", zap.Error(err))
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if job == nil {
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if err := w.ProcessJob(ctx, *job); err != nil {
			w.logger.Error("process import job failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}

func (w *ImportWorker) ProcessJob(ctx context.Context, job domain.ImportJob) error {
	log := w.logger.With(zap.String("job_id", job.ID), zap.String("kind", string(job.Kind)))
	log.Info("import job claimed", zap.Int("attempt", job.Attempts))

	reader, err := w.source.Open(ctx, job.SourcePath)
	if err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("open import source: %w", err))
	}
	defer reader.Close()

	table, err := w.decoder.Decode(reader, job.SourcePath)
	if err != nil {
		return w.fail(ctx, job, fmt.Errorf("decode import file: %w", err), domain.ImportSummary{})
	}

	ticker := time.NewTicker(w.cfg.HeartbeatInterval)
	defer ticker.Stop()

	progress := func(ctx context.Context, p Progress) error {
		select {
		case <-ticker.C:
			if err := w.repo.Heartbeat(ctx, job.ID, w.cfg.LeaseDuration); err != nil {
				return fmt.Errorf("heartbeat: %w", err)
			}
		default:
		}

		if p.Processed%w.cfg.ProgressEvery != 0 {
			return nil
		}
		return w.repo.UpdateProgress(ctx, job.ID, toImportProgress(p))
	}

	// From here on the batch may write records, so an expired lease fails
	// the job instead of queueing it again.
	if err := w.repo.BeginWrites(ctx, job.ID); err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("begin writes: %w", err))
	}

	result, runErr := w.runner.Run(ctx, RunInput{
		Kind:        job.Kind,
		Table:       table,
		Mapping:     job.Mapping,
		PortfolioID: job.PortfolioID,
		Portfolio:   job.Portfolio,
	}, progress)

	summary := domain.ImportSummary{
		ImportProgress: domain.ImportProgress{
			ProcessedCount: int64(result.Success + len(result.Errors)),
			SuccessCount:   int64(result.Success),
			FailedCount:    int64(len(result.Errors)),
		},
		PortfolioID: result.PortfolioID,
		Errors:      result.Errors,
	}

	if runErr != nil {
		// Prepare errors leave no records behind, so they are retried. A
		// rerun after rows were written would create them twice.
		if errors.Is(runErr, ErrPrepareBatch) {
			return w.onProcessingError(ctx, job, runErr)
		}
		return w.fail(ctx, job, runErr, summary)
	}

	if err := w.complete(ctx, job.ID, summary); err != nil {
		return w.fail(ctx, job, fmt.Errorf("complete job: %w", err), summary)
	}

	log.Info("import job completed",
		zap.Int64("success", summary.SuccessCount),
		zap.Int64("failed", summary.FailedCount))
	return nil
}

// complete records a finished batch, retrying on a fresh context. The rows
// are already written, so a job that cannot be completed is failed and
// never queued again.
func (w *ImportWorker) complete(ctx context.Context, jobID string, summary domain.ImportSummary) error {
	ctx = context.WithoutCancel(ctx)

	var err error
	for attempt := 1; attempt <= w.cfg.CompleteAttempts; attempt++ {
		if err = w.repo.Complete(ctx, jobID, summary); err == nil {
			return nil
		}
		w.logger.Warn("complete import job failed",
			zap.String("job_id", jobID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < w.cfg.CompleteAttempts {
			sleepWithContext(ctx, time.Duration(attempt)*w.cfg.RetryDelay)
		}
	}
	return err
}

func (w *ImportWorker) onProcessingError(ctx context.Context, job domain.ImportJob, err error) error {
	reason := truncateReason(err.Error())
	if job.Attempts < job.MaxAttempts {
		if requeueErr := w.repo.Requeue(context.WithoutCancel(ctx), job.ID, reason); requeueErr != nil {
			return fmt.Errorf("%v; requeue failed: %w", err, requeueErr)
		}
		return err
	}

	return w.fail(ctx, job, err, domain.ImportSummary{})
}

func (w *ImportWorker) fail(ctx context.Context, job domain.ImportJob, err error, summary domain.ImportSummary) error {
	if failErr := w.repo.Fail(context.WithoutCancel(ctx), job.ID, truncateReason(err.Error()), summary); failErr != nil {
		return fmt.Errorf("%v; fail update failed: %w", err, failErr)
	}
	return err
}

func toImportProgress(p Progress) domain.ImportProgress {
	return domain.ImportProgress{
		ProcessedCount: int64(p.Processed),
		SuccessCount:   int64(p.Success),
		FailedCount:    int64(p.Failed),
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}

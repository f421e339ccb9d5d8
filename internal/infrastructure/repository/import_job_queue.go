package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

var ErrLeaseLost = errors.New("import job lease lost")

// ImportJobQueue holds the lease based job lifecycle used by the import
// workers. Claims use FOR UPDATE SKIP LOCKED so concurrent workers never
// receive the same job.
type ImportJobQueue struct {
	pool *pgxpool.Pool
}

func NewImportJobQueue(pool *pgxpool.Pool) *ImportJobQueue {
	return &ImportJobQueue{pool: pool}
}

// ClaimNext leases the oldest queued job. Jobs whose lease ran out while
// running are settled first: a job that never began writing goes back to
// the queue, one that did is failed, since records may already exist.
func (q *ImportJobQueue) ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error) {
	tx, err := q.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
UPDATE import_jobs
SET status = CASE WHEN writes_started_at IS NULL AND attempts < max_attempts THEN 'queued' ELSE 'failed' END,
    error_message = 'lease expired',
    finished_at = CASE WHEN writes_started_at IS NULL AND attempts < max_attempts THEN NULL ELSE NOW() END,
    lease_expires_at = NULL,
    updated_at = NOW()
WHERE status = 'running' AND lease_expires_at < NOW()
`); err != nil {
		return nil, fmt.Errorf("settle expired leases: %w", err)
	}

	row := tx.QueryRow(ctx, `
WITH next_job AS (
    SELECT id
    FROM import_jobs
    WHERE status = 'queued'
    ORDER BY created_at, id
    FOR UPDATE SKIP LOCKED
    LIMIT 1
)
UPDATE import_jobs j
SET status = 'running',
    attempts = j.attempts + 1,
    started_at = COALESCE(j.started_at, NOW()),
    heartbeat_at = NOW(),
    lease_expires_at = NOW() + make_interval(secs => $1),
    updated_at = NOW()
FROM next_job
WHERE j.id = next_job.id
RETURNING j.id::text, j.kind, j.source_path, j.mapping::text, COALESCE(j.portfolio_id::text, ''),
          j.portfolio_meta::text, j.status, j.attempts, j.max_attempts
`, leaseDuration.Seconds())

	var (
		job     domain.ImportJob
		kind    string
		mapping string
		meta    *string
	)
	err = row.Scan(&job.ID, &kind, &job.SourcePath, &mapping, &job.PortfolioID, &meta, &job.Status, &job.Attempts, &job.MaxAttempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if err := tx.Commit(ctx); err != nil {
				return nil, fmt.Errorf("commit lease settlement: %w", err)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("claim import job: %w", err)
	}
	job.Kind = domain.ImportKind(kind)

	if err := decodeJobJSON(mapping, meta, "", &job); err != nil {
		return nil, fmt.Errorf("decode import job %s: %w", job.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit claim: %w", err)
	}
	return &job, nil
}

func (q *ImportJobQueue) Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error {
	tag, err := q.pool.Exec(ctx, `
UPDATE import_jobs
SET heartbeat_at = NOW(),
    lease_expires_at = NOW() + make_interval(secs => $2),
    updated_at = NOW()
WHERE id = $1 AND status = 'running'
`, jobID, leaseDuration.Seconds())
	if err != nil {
		return fmt.Errorf("heartbeat import job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeaseLost
	}
	return nil
}

// BeginWrites marks the point after which a rerun could duplicate records.
func (q *ImportJobQueue) BeginWrites(ctx context.Context, jobID string) error {
	tag, err := q.pool.Exec(ctx, `
UPDATE import_jobs
SET writes_started_at = NOW(),
    updated_at = NOW()
WHERE id = $1 AND status = 'running'
`, jobID)
	if err != nil {
		return fmt.Errorf("begin import writes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeaseLost
	}
	return nil
}

func (q *ImportJobQueue) UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error {
	if _, err := q.pool.Exec(ctx, `
UPDATE import_jobs
SET processed_count = $2,
    success_count = $3,
    failed_count = $4,
    updated_at = NOW()
WHERE id = $1
`, jobID, progress.ProcessedCount, progress.SuccessCount, progress.FailedCount); err != nil {
		return fmt.Errorf("update import progress: %w", err)
	}
	return nil
}

func (q *ImportJobQueue) Complete(ctx context.Context, jobID string, summary domain.ImportSummary) error {
	return q.finish(ctx, jobID, domain.ImportStatusSucceeded, nil, summary)
}

func (q *ImportJobQueue) Fail(ctx context.Context, jobID string, reason string, summary domain.ImportSummary) error {
	return q.finish(ctx, jobID, domain.ImportStatusFailed, &reason, summary)
}

func (q *ImportJobQueue) Requeue(ctx context.Context, jobID string, reason string) error {
	if _, err := q.pool.Exec(ctx, `
UPDATE import_jobs
SET status = 'queued',
    error_message = $2,
    lease_expires_at = NULL,
    heartbeat_at = NULL,
    writes_started_at = NULL,
    updated_at = NOW()
WHERE id = $1
`, jobID, reason); err != nil {
		return fmt.Errorf("requeue import job: %w", err)
	}
	return nil
}

func (q *ImportJobQueue) finish(ctx context.Context, jobID, status string, reason *string, summary domain.ImportSummary) error {
	jobErrors := summary.Errors
	if jobErrors == nil {
		jobErrors = []string{}
	}
	encoded, err := json.Marshal(jobErrors)
	if err != nil {
		return fmt.Errorf("encode import errors: %w", err)
	}

	if _, err := q.pool.Exec(ctx, `
UPDATE import_jobs
SET status = $2,
    error_message = $3,
    processed_count = $4,
    success_count = $5,
    failed_count = $6,
    errors = $7::jsonb,
    portfolio_id = COALESCE(NULLIF($8, '')::uuid, portfolio_id),
    lease_expires_at = NULL,
    finished_at = NOW(),
    updated_at = NOW()
WHERE id = $1
`, jobID, status, reason, summary.ProcessedCount, summary.SuccessCount, summary.FailedCount, string(encoded), summary.PortfolioID); err != nil {
		return fmt.Errorf("finish import job: %w", err)
	}
	return nil
}

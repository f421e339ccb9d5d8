package imports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type StartImportInput struct {
	Kind        domain.ImportKind
	Filename    string
	Content     io.Reader
	Mapping     map[string]string
	PortfolioID string
	Portfolio   *domain.PortfolioMeta
}

type StartImportOutput struct {
	JobID   string            `json:"job_id"`
	Status  string            `json:"status"`
	Rows    int               `json:"rows"`
	Mapping map[string]string `json:"mapping"`
}

type StartImport interface {
	Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error)
}

type importFileStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}

type importJobEnqueuer interface {
	Enqueue(ctx context.Context, job domain.ImportJob) (string, error)
}

type startImport struct {
	decoder     TableDecoder
	files       importFileStore
	jobs        importJobEnqueuer
	maxAttempts int
}

func NewStartImport(decoder TableDecoder, files importFileStore, jobs importJobEnqueuer, maxAttempts int) StartImport {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &startImport{decoder: decoder, files: files, jobs: jobs, maxAttempts: maxAttempts}
}

// Execute checks everything that can be checked before a batch starts (the
// file decodes, the mapping covers the required fields, the destination is
// named) and queues the job. Nothing is written to the record store here.
func (uc *startImport) Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error) {
	if !in.Kind.Valid() {
		return StartImportOutput{}, ErrInvalidImportKind
	}
	if in.Content == nil || strings.TrimSpace(in.Filename) == "" {
		return StartImportOutput{}, ErrInvalidImportFile
	}

	job := domain.ImportJob{
		Kind:        in.Kind,
		Status:      domain.ImportStatusQueued,
		MaxAttempts: uc.maxAttempts,
	}

	switch in.Kind {
	case domain.ImportKindPortfolio:
		if in.Portfolio == nil {
			return StartImportOutput{}, ErrInvalidPortfolio
		}
		if err := in.Portfolio.Validate(); err != nil {
			return StartImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidPortfolio, err)
		}
		job.Portfolio = in.Portfolio
	case domain.ImportKindDebts:
		if _, err := uuid.Parse(in.PortfolioID); err != nil {
			return StartImportOutput{}, fmt.Errorf("%w: portfolio_id must be a UUID", ErrInvalidPortfolio)
		}
		job.PortfolioID = in.PortfolioID
	}

	data, err := io.ReadAll(in.Content)
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidImportFile, err)
	}

	table, err := uc.decoder.Decode(bytes.NewReader(data), in.Filename)
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidImportFile, err)
	}

	mapping, err := ResolveMapping(in.Kind, table.Headers, in.Mapping)
	if err != nil {
		return StartImportOutput{}, err
	}
	job.Mapping = mapping.Strings()

	sourcePath, err := uc.files.Save(ctx, in.Filename, bytes.NewReader(data))
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}
	job.SourcePath = sourcePath

	jobID, err := uc.jobs.Enqueue(ctx, job)
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}

	return StartImportOutput{
		JobID:   jobID,
		Status:  domain.ImportStatusQueued,
		Rows:    len(table.Rows),
		Mapping: job.Mapping,
	}, nil
}

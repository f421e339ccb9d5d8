package imports

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type GetImportJobInput struct {
	ID string
}

type GetImportJobOutput struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Status      string            `json:"status"`
	PortfolioID string            `json:"portfolio_id,omitempty"`
	Attempts    int               `json:"attempts"`
	Processed   int64             `json:"processed"`
	Success     int64             `json:"success"`
	Failed      int64             `json:"failed"`
	Errors      []string          `json:"errors"`
	Message     string            `json:"message,omitempty"`
	Mapping     map[string]string `json:"mapping"`
}

type GetImportJob interface {
	Execute(ctx context.Context, in GetImportJobInput) (GetImportJobOutput, error)
}

type importJobReader interface {
	GetByID(ctx context.Context, id string) (*domain.ImportJob, error)
}

type getImportJob struct {
	repo importJobReader
}

func NewGetImportJob(repo importJobReader) GetImportJob {
	return &getImportJob{repo: repo}
}

func (uc *getImportJob) Execute(ctx context.Context, in GetImportJobInput) (GetImportJobOutput, error) {
	if _, err := uuid.Parse(in.ID); err != nil {
		return GetImportJobOutput{}, ErrInvalidImportJobID
	}

	job, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrImportJobNotFound) {
			return GetImportJobOutput{}, ErrImportJobNotFound
		}
		return GetImportJobOutput{}, fmt.Errorf("%w: %v", ErrGetImportJob, err)
	}

	jobErrors := job.Errors
	if jobErrors == nil {
		jobErrors = []string{}
	}

	return GetImportJobOutput{
		ID:          job.ID,
		Kind:        string(job.Kind),
		Status:      job.Status,
		PortfolioID: job.PortfolioID,
		Attempts:    job.Attempts,
		Processed:   job.Progress.ProcessedCount,
		Success:     job.Progress.SuccessCount,
		Failed:      job.Progress.FailedCount,
		Errors:      jobErrors,
		Message:     job.Message,
		Mapping:     job.Mapping,
	}, nil
}

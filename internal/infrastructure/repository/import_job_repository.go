package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/db/models"
)

type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Enqueue(ctx context.Context, job domain.ImportJob) (string, error) {
	mapping, err := json.Marshal(nonNilMapping(job.Mapping))
	if err != nil {
		return "", fmt.Errorf("encode mapping: %w", err)
	}

	row := models.ImportJob{
		Kind:        string(job.Kind),
		SourcePath:  job.SourcePath,
		Mapping:     string(mapping),
		PortfolioID: nullableText(job.PortfolioID),
		Status:      domain.ImportStatusQueued,
		Errors:      "[]",
		MaxAttempts: job.MaxAttempts,
	}
	if job.Portfolio != nil {
		meta, err := json.Marshal(job.Portfolio)
		if err != nil {
			return "", fmt.Errorf("encode portfolio meta: %w", err)
		}
		encoded := string(meta)
		row.PortfolioMeta = &encoded
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create import job: %w", err)
	}

	return row.ID, nil
}

func (r *ImportJobRepository) GetByID(ctx context.Context, id string) (*domain.ImportJob, error) {
	var row models.ImportJob

	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrImportJobNotFound
		}
		return nil, fmt.Errorf("get import job by id: %w", err)
	}

	job, err := toDomainImportJob(row)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func toDomainImportJob(row models.ImportJob) (domain.ImportJob, error) {
	job := domain.ImportJob{
		ID:          row.ID,
		Kind:        domain.ImportKind(row.Kind),
		SourcePath:  row.SourcePath,
		Status:      row.Status,
		Attempts:    row.Attempts,
		MaxAttempts: row.MaxAttempts,
		Progress: domain.ImportProgress{
			ProcessedCount: row.ProcessedCount,
			SuccessCount:   row.SuccessCount,
			FailedCount:    row.FailedCount,
		},
	}
	if row.PortfolioID != nil {
		job.PortfolioID = *row.PortfolioID
	}
	if row.ErrorMessage != nil {
		job.Message = *row.ErrorMessage
	}

	if err := decodeJobJSON(row.Mapping, row.PortfolioMeta, row.Errors, &job); err != nil {
		return domain.ImportJob{}, fmt.Errorf("decode import job %s: %w", row.ID, err)
	}
	return job, nil
}

func decodeJobJSON(mapping string, meta *string, jobErrors string, job *domain.ImportJob) error {
	if mapping != "" {
		if err := json.Unmarshal([]byte(mapping), &job.Mapping); err != nil {
			return fmt.Errorf("mapping: %w", err)
		}
	}
	if meta != nil && *meta != "" && *meta != "null" {
		job.Portfolio = &domain.PortfolioMeta{}
		if err := json.Unmarshal([]byte(*meta), job.Portfolio); err != nil {
			return fmt.Errorf("portfolio meta: %w", err)
		}
	}
	if jobErrors != "" {
		if err := json.Unmarshal([]byte(jobErrors), &job.Errors); err != nil {
			return fmt.Errorf("errors: %w", err)
		}
	}
	return nil
}

func nonNilMapping(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

package repository_test

import (
	"context"
	"errors"
	"testing"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/repository"
)

func TestImportJobRepositoryEnqueueIntegration(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewImportJobRepository(db)

	jobID, err := repo.Enqueue(context.Background(), domain.ImportJob{
		Kind:        domain.ImportKindPortfolio,
		SourcePath:  "batch.csv",
		Mapping:     map[string]string{"Debtor Name": "debtor_name"},
		Portfolio:   &domain.PortfolioMeta{Name: "Q1", Litigation: true},
		MaxAttempts: 3,
	})
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if jobID == "" {
		t.Fatal("expected job id")
	}

	job, err := repo.GetByID(context.Background(), jobID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if job.Status != domain.ImportStatusQueued || job.Kind != domain.ImportKindPortfolio {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.Mapping["Debtor Name"] != "debtor_name" {
		t.Fatalf("unexpected mapping: %v", job.Mapping)
	}
	if job.Portfolio == nil || job.Portfolio.Name != "Q1" || !job.Portfolio.Litigation {
		t.Fatalf("unexpected portfolio meta: %+v", job.Portfolio)
	}
	if job.MaxAttempts != 3 {
		t.Fatalf("expected max attempts 3, got %d", job.MaxAttempts)
	}
}

func TestImportJobRepositoryGetByIDNotFoundIntegration(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewImportJobRepository(db)

	_, err := repo.GetByID(context.Background(), "00000000-0000-4000-8000-000000000000")
	if !errors.Is(err, domain.ErrImportJobNotFound) {
		t.Fatalf("expected ErrImportJobNotFound, got %v", err)
	}
}

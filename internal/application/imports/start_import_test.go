package imports_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/file"
)

type fakeFileStore struct {
	saved string
	err   error
}

func (f *fakeFileStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	f.saved = string(data)
	return "stored-" + filename, nil
}

type fakeJobEnqueuer struct {
	job       *domain.ImportJob
	returnErr error
}

func (f *fakeJobEnqueuer) Enqueue(ctx context.Context, job domain.ImportJob) (string, error) {
	if f.returnErr != nil {
		return "", f.returnErr
	}
	f.job = &job
	return "8c6f64e0-6a0c-4bb7-9f0d-2f7b0b3e4a10", nil
}

const startCSV = "Debtor Name,Account Number,Original Balance\nJohn Doe,A1,100\n"

func TestStartImportQueuesPortfolioJob(t *testing.T) {
	t.Parallel()

	files := &fakeFileStore{}
	jobs := &fakeJobEnqueuer{}
	uc := app.NewStartImport(file.NewTableDecoder(), files, jobs, 0)

	out, err := uc.Execute(context.Background(), app.StartImportInput{
		Kind:      domain.ImportKindPortfolio,
		Filename:  "batch.csv",
		Content:   strings.NewReader(startCSV),
		Portfolio: &domain.PortfolioMeta{Name: "Q1", Client: "Acme"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.JobID == "" || out.Status != domain.ImportStatusQueued {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.Rows != 1 {
		t.Fatalf("expected 1 row, got %d", out.Rows)
	}
	if files.saved != startCSV {
		t.Fatalf("expected the whole file to be stored, got %q", files.saved)
	}
	if jobs.job == nil {
		t.Fatal("expected enqueued job")
	}
	if jobs.job.SourcePath != "stored-batch.csv" {
		t.Fatalf("unexpected source path: %s", jobs.job.SourcePath)
	}
	if jobs.job.MaxAttempts != 5 {
		t.Fatalf("expected default max attempts 5, got %d", jobs.job.MaxAttempts)
	}
	if jobs.job.Portfolio == nil || jobs.job.Portfolio.Name != "Q1" {
		t.Fatalf("unexpected portfolio meta: %+v", jobs.job.Portfolio)
	}
	if jobs.job.Mapping["Account Number"] != "account_number" {
		t.Fatalf("unexpected mapping: %v", jobs.job.Mapping)
	}
}

func TestStartImportValidatesDestination(t *testing.T) {
	t.Parallel()

	uc := app.NewStartImport(file.NewTableDecoder(), &fakeFileStore{}, &fakeJobEnqueuer{}, 3)

	_, err := uc.Execute(context.Background(), app.StartImportInput{
		Kind:     domain.ImportKindPortfolio,
		Filename: "batch.csv",
		Content:  strings.NewReader(startCSV),
	})
	if !errors.Is(err, app.ErrInvalidPortfolio) {
		t.Fatalf("expected ErrInvalidPortfolio, got %v", err)
	}

	_, err = uc.Execute(context.Background(), app.StartImportInput{
		Kind:      domain.ImportKindPortfolio,
		Filename:  "batch.csv",
		Content:   strings.NewReader(startCSV),
		Portfolio: &domain.PortfolioMeta{Name: "  "},
	})
	if !errors.Is(err, app.ErrInvalidPortfolio) {
		t.Fatalf("expected ErrInvalidPortfolio, got %v", err)
	}

	_, err = uc.Execute(context.Background(), app.StartImportInput{
		Kind:        domain.ImportKindDebts,
		Filename:    "batch.csv",
		Content:     strings.NewReader(startCSV),
		PortfolioID: "not-a-uuid",
	})
	if !errors.Is(err, app.ErrInvalidPortfolio) {
		t.Fatalf("expected ErrInvalidPortfolio, got %v", err)
	}
}

func TestStartImportRejectsBadMapping(t *testing.T) {
	t.Parallel()

	jobs := &fakeJobEnqueuer{}
	uc := app.NewStartImport(file.NewTableDecoder(), &fakeFileStore{}, jobs, 3)

	_, err := uc.Execute(context.Background(), app.StartImportInput{
		Kind:     domain.ImportKindVendors,
		Filename: "vendors.csv",
		Content:  strings.NewReader("Email\na@example.com\n"),
	})
	if !errors.Is(err, app.ErrInvalidMapping) {
		t.Fatalf("expected ErrInvalidMapping, got %v", err)
	}

	_, err = uc.Execute(context.Background(), app.StartImportInput{
		Kind:     domain.ImportKindVendors,
		Filename: "vendors.csv",
		Content:  strings.NewReader("Company\nAcme\n"),
		Mapping:  map[string]string{"Company": "shoe_size"},
	})
	if !errors.Is(err, app.ErrInvalidMapping) {
		t.Fatalf("expected ErrInvalidMapping, got %v", err)
	}
	if jobs.job != nil {
		t.Fatal("did not expect a job to be enqueued")
	}
}

func TestStartImportRejectsUnreadableFile(t *testing.T) {
	t.Parallel()

	uc := app.NewStartImport(file.NewTableDecoder(), &fakeFileStore{}, &fakeJobEnqueuer{}, 3)

	_, err := uc.Execute(context.Background(), app.StartImportInput{
		Kind:     domain.ImportKindVendors,
		Filename: "vendors.csv",
		Content:  strings.NewReader(""),
	})
	if !errors.Is(err, app.ErrInvalidImportFile) {
		t.Fatalf("expected ErrInvalidImportFile, got %v", err)
	}

	_, err = uc.Execute(context.Background(), app.StartImportInput{
		Kind:     domain.ImportKindVendors,
		Filename: "",
		Content:  strings.NewReader("Vendor\nAcme\n"),
	})
	if !errors.Is(err, app.ErrInvalidImportFile) {
		t.Fatalf("expected ErrInvalidImportFile, got %v", err)
	}
}

func TestStartImportEnqueueError(t *testing.T) {
	t.Parallel()

	uc := app.NewStartImport(file.NewTableDecoder(), &fakeFileStore{}, &fakeJobEnqueuer{returnErr: errors.New("db down")}, 3)

	_, err := uc.Execute(context.Background(), app.StartImportInput{
		Kind:     domain.ImportKindVendors,
		Filename: "vendors.csv",
		Content:  strings.NewReader("Vendor\nAcme\n"),
	})
	if !errors.Is(err, app.ErrEnqueueImportJob) {
		t.Fatalf("expected ErrEnqueueImportJob, got %v", err)
	}
}

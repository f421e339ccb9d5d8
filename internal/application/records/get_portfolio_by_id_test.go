package records_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	app "github.com/mohammadpnp/debt-import/internal/application/records"
	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type fakePortfolioReader struct {
	portfolio *domain.Portfolio
	returnErr error
}

func (f *fakePortfolioReader) GetPortfolio(ctx context.Context, id string) (*domain.Portfolio, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	return f.portfolio, nil
}

const portfolioID = "5b8f2d3a-1c4e-4f6a-9b7d-3e2a1c0f9d8e"

func TestGetPortfolioByIDSuccess(t *testing.T) {
	t.Parallel()

	uc := app.NewGetPortfolioByID(&fakePortfolioReader{portfolio: &domain.Portfolio{
		ID:             portfolioID,
		PortfolioMeta:  domain.PortfolioMeta{Name: "Q1", Client: "Acme"},
		Status:         "active",
		PortfolioStats: domain.PortfolioStats{AccountCount: 2, TotalFaceValue: decimal.NewFromInt(150)},
	}})

	out, err := uc.Execute(context.Background(), app.GetPortfolioByIDInput{ID: portfolioID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.AccountCount != 2 || out.TotalFaceValue != "150.00" || out.Client != "Acme" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestGetPortfolioByIDErrors(t *testing.T) {
	t.Parallel()

	uc := app.NewGetPortfolioByID(&fakePortfolioReader{})
	if _, err := uc.Execute(context.Background(), app.GetPortfolioByIDInput{ID: "x"}); !errors.Is(err, app.ErrInvalidPortfolioID) {
		t.Fatalf("expected ErrInvalidPortfolioID, got %v", err)
	}

	uc = app.NewGetPortfolioByID(&fakePortfolioReader{returnErr: domain.ErrPortfolioNotFound})
	if _, err := uc.Execute(context.Background(), app.GetPortfolioByIDInput{ID: portfolioID}); !errors.Is(err, app.ErrPortfolioNotFound) {
		t.Fatalf("expected ErrPortfolioNotFound, got %v", err)
	}

	uc = app.NewGetPortfolioByID(&fakePortfolioReader{returnErr: errors.New("db down")})
	if _, err := uc.Execute(context.Background(), app.GetPortfolioByIDInput{ID: portfolioID}); !errors.Is(err, app.ErrGetPortfolioByID) {
		t.Fatalf("expected ErrGetPortfolioByID, got %v", err)
	}
}

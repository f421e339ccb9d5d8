package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type GetPortfolioByIDInput struct {
	ID string
}

type GetPortfolioByIDOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Client         string `json:"client"`
	Creditor       string `json:"creditor"`
	Type           string `json:"type"`
	Litigation     bool   `json:"litigation"`
	Status         string `json:"status"`
	AccountCount   int64  `json:"account_count"`
	TotalFaceValue string `json:"total_face_value"`
}

type GetPortfolioByID interface {
	Execute(ctx context.Context, in GetPortfolioByIDInput) (GetPortfolioByIDOutput, error)
}

type portfolioReader interface {
	GetPortfolio(ctx context.Context, id string) (*domain.Portfolio, error)
}

type getPortfolioByID struct {
	repo portfolioReader
}

func NewGetPortfolioByID(repo portfolioReader) GetPortfolioByID {
	return &getPortfolioByID{repo: repo}
}

func (uc *getPortfolioByID) Execute(ctx context.Context, in GetPortfolioByIDInput) (GetPortfolioByIDOutput, error) {
	if _, err := uuid.Parse(in.ID); err != nil {
		return GetPortfolioByIDOutput{}, ErrInvalidPortfolioID
	}

	portfolio, err := uc.repo.GetPortfolio(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			return GetPortfolioByIDOutput{}, ErrPortfolioNotFound
		}
		return GetPortfolioByIDOutput{}, fmt.Errorf("%w: %v", ErrGetPortfolioByID, err)
	}

	return GetPortfolioByIDOutput{
		ID:             portfolio.ID,
		Name:           portfolio.Name,
		Client:         portfolio.Client,
		Creditor:       portfolio.Creditor,
		Type:           portfolio.Type,
		Litigation:     portfolio.Litigation,
		Status:         portfolio.Status,
		AccountCount:   portfolio.AccountCount,
		TotalFaceValue: portfolio.TotalFaceValue.StringFixed(2),
	}, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

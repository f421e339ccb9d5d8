package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/db/models"
)

type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func (r *PortfolioRepository) CreatePortfolio(ctx context.Context, portfolio domain.Portfolio) (domain.Portfolio, error) {
	row := models.Portfolio{
		Name:           portfolio.Name,
		Client:         portfolio.Client,
		Creditor:       portfolio.Creditor,
		Type:           portfolio.Type,
		Litigation:     portfolio.Litigation,
		Status:         portfolio.Status,
		AccountCount:   portfolio.AccountCount,
		TotalFaceValue: portfolio.TotalFaceValue,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Portfolio{}, fmt.Errorf("create portfolio: %w", err)
	}
	return toDomainPortfolio(row), nil
}

func (r *PortfolioRepository) GetPortfolio(ctx context.Context, id string) (*domain.Portfolio, error) {
	var row models.Portfolio

	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("get portfolio by id: %w", err)
	}

	portfolio := toDomainPortfolio(row)
	return &portfolio, nil
}

func (r *PortfolioRepository) IncrementPortfolioStats(ctx context.Context, id string, delta domain.PortfolioStats) error {
	result := r.db.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"account_count":    gorm.Expr("account_count + ?", delta.AccountCount),
			"total_face_value": gorm.Expr("total_face_value + ?", delta.TotalFaceValue),
		})
	if result.Error != nil {
		return fmt.Errorf("update portfolio stats: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}

func toDomainPortfolio(row models.Portfolio) domain.Portfolio {
	return domain.Portfolio{
		ID: row.ID,
		PortfolioMeta: domain.PortfolioMeta{
			Name:       row.Name,
			Client:     row.Client,
			Creditor:   row.Creditor,
			Type:       row.Type,
			Litigation: row.Litigation,
		},
		Status: row.Status,
		PortfolioStats: domain.PortfolioStats{
			AccountCount:   row.AccountCount,
			TotalFaceValue: row.TotalFaceValue,
		},
	}
}

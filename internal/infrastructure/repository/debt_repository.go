package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/db/models"
)

type DebtRepository struct {
	db *gorm.DB
}

func NewDebtRepository(db *gorm.DB) *DebtRepository {
	return &DebtRepository{db: db}
}

func (r *DebtRepository) CreateDebt(ctx context.Context, debt domain.Debt) (domain.Debt, error) {
	row := models.Debt{
		PortfolioID:      debt.PortfolioID,
		DebtorID:         debt.DebtorID,
		AccountNumber:    debt.AccountNumber,
		OriginalBalance:  debt.OriginalBalance,
		CurrentBalance:   debt.CurrentBalance,
		OriginalCreditor: debt.OriginalCreditor,
		ChargeOffDate:    debt.ChargeOffDate,
		LastPaymentDate:  debt.LastPaymentDate,
		Status:           string(debt.Status),
		Priority:         string(debt.Priority),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return toDomainDebt(row), nil
}

func (r *DebtRepository) ListDebtsByDebtor(ctx context.Context, debtorID string) ([]domain.Debt, error) {
	var rows []models.Debt
	if err := r.db.WithContext(ctx).Where("debtor_id = ?", debtorID).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list debts by debtor: %w", err)
	}

	debts := make([]domain.Debt, 0, len(rows))
	for _, row := range rows {
		debts = append(debts, toDomainDebt(row))
	}
	return debts, nil
}

func toDomainDebt(row models.Debt) domain.Debt {
	return domain.Debt{
		ID:               row.ID,
		PortfolioID:      row.PortfolioID,
		DebtorID:         row.DebtorID,
		AccountNumber:    row.AccountNumber,
		OriginalBalance:  row.OriginalBalance,
		CurrentBalance:   row.CurrentBalance,
		OriginalCreditor: row.OriginalCreditor,
		ChargeOffDate:    row.ChargeOffDate,
		LastPaymentDate:  row.LastPaymentDate,
		Status:           domain.DebtStatus(row.Status),
		Priority:         domain.DebtPriority(row.Priority),
	}
}

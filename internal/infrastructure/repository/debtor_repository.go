package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/db/models"
)

type DebtorRepository struct {
	db *gorm.DB
}

func NewDebtorRepository(db *gorm.DB) *DebtorRepository {
	return &DebtorRepository{db: db}
}

// ListDebtors loads every debtor without their cases, oldest first.
func (r *DebtorRepository) ListDebtors(ctx context.Context) ([]domain.Debtor, error) {
	var rows []models.Debtor
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}

	debtors := make([]domain.Debtor, 0, len(rows))
	for _, row := range rows {
		debtors = append(debtors, toDomainDebtor(row))
	}
	return debtors, nil
}

func (r *DebtorRepository) CreateDebtor(ctx context.Context, debtor domain.Debtor) (domain.Debtor, error) {
	row := models.Debtor{
		Name:    debtor.Name,
		Email:   debtor.Email,
		Phone:   debtor.Phone,
		Street:  debtor.Address.Street,
		City:    debtor.Address.City,
		State:   debtor.Address.State,
		ZipCode: debtor.Address.ZipCode,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Debtor{}, fmt.Errorf("create debtor: %w", err)
	}
	return toDomainDebtor(row), nil
}

func (r *DebtorRepository) GetDebtor(ctx context.Context, id string) (*domain.Debtor, error) {
	var row models.Debtor

	err := r.db.WithContext(ctx).
		Preload("Debts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDebtorNotFound
		}
		return nil, fmt.Errorf("get debtor by id: %w", err)
	}

	debtor := toDomainDebtor(row)
	debtor.Debts = make([]domain.Debt, 0, len(row.Debts))
	for _, d := range row.Debts {
		debtor.Debts = append(debtor.Debts, toDomainDebt(d))
	}
	return &debtor, nil
}

func toDomainDebtor(row models.Debtor) domain.Debtor {
	return domain.Debtor{
		ID:    row.ID,
		Name:  row.Name,
		Email: row.Email,
		Phone: row.Phone,
		Address: domain.Address{
			Street:  row.Street,
			City:    row.City,
			State:   row.State,
			ZipCode: row.ZipCode,
		},
	}
}

package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type GetDebtorByIDInput struct {
	ID string
}

type AddressOutput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type DebtOutput struct {
	ID               string `json:"id"`
	PortfolioID      string `json:"portfolio_id"`
	AccountNumber    string `json:"account_number"`
	OriginalBalance  string `json:"original_balance"`
	CurrentBalance   string `json:"current_balance"`
	OriginalCreditor string `json:"original_creditor,omitempty"`
	ChargeOffDate    string `json:"charge_off_date,omitempty"`
	LastPaymentDate  string `json:"last_payment_date,omitempty"`
	Status           string `json:"status"`
	Priority         string `json:"priority"`
}

type GetDebtorByIDOutput struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Address AddressOutput `json:"address"`
	Debts   []DebtOutput  `json:"debts"`
}

type GetDebtorByID interface {
	Execute(ctx context.Context, in GetDebtorByIDInput) (GetDebtorByIDOutput, error)
}

type debtorReader interface {
	GetDebtor(ctx context.Context, id string) (*domain.Debtor, error)
}

type getDebtorByID struct {
	repo debtorReader
}

func NewGetDebtorByID(repo debtorReader) GetDebtorByID {
	return &getDebtorByID{repo: repo}
}

func (uc *getDebtorByID) Execute(ctx context.Context, in GetDebtorByIDInput) (GetDebtorByIDOutput, error) {
	if _, err := uuid.Parse(in.ID); err != nil {
		return GetDebtorByIDOutput{}, ErrInvalidDebtorID
	}

	debtor, err := uc.repo.GetDebtor(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDebtorNotFound) {
			return GetDebtorByIDOutput{}, ErrDebtorNotFound
		}
		return GetDebtorByIDOutput{}, fmt.Errorf("%w: %v", ErrGetDebtorByID, err)
	}

	debts := make([]DebtOutput, 0, len(debtor.Debts))
	for _, d := range debtor.Debts {
		debts = append(debts, DebtOutput{
			ID:               d.ID,
			PortfolioID:      d.PortfolioID,
			AccountNumber:    d.AccountNumber,
			OriginalBalance:  d.OriginalBalance.StringFixed(2),
			CurrentBalance:   d.CurrentBalance.StringFixed(2),
			OriginalCreditor: d.OriginalCreditor,
			ChargeOffDate:    formatDate(d.ChargeOffDate),
			LastPaymentDate:  formatDate(d.LastPaymentDate),
			Status:           string(d.Status),
			Priority:         string(d.Priority),
		})
	}

	return GetDebtorByIDOutput{
		ID:    debtor.ID,
		Name:  debtor.Name,
		Email: debtor.Email,
		Phone: debtor.Phone,
		Address: AddressOutput{
			Street:  debtor.Address.Street,
			City:    debtor.Address.City,
			State:   debtor.Address.State,
			ZipCode: debtor.Address.ZipCode,
		},
		Debts: debts,
	}, nil
}

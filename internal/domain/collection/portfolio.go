package collection

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PortfolioMeta struct {
	Name       string `json:"name"`
	Client     string `json:"client"`
	Creditor   string `json:"creditor"`
	Type       string `json:"type"`
	Litigation bool   `json:"litigation"`
}

func (m PortfolioMeta) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalidPortfolio
	}
	return nil
}

type PortfolioStats struct {
	AccountCount   int64
	TotalFaceValue decimal.Decimal
}

// Add folds one created case into the stats.
func (s PortfolioStats) Add(debt Debt) PortfolioStats {
	return PortfolioStats{
		AccountCount:   s.AccountCount + 1,
		TotalFaceValue: s.TotalFaceValue.Add(debt.OriginalBalance),
	}
}

type Portfolio struct {
	ID string
	PortfolioMeta
	Status string
	PortfolioStats
}

func NewPortfolio(meta PortfolioMeta) (Portfolio, error) {
	if err := meta.Validate(); err != nil {
		return Portfolio{}, err
	}
	meta.Name = strings.TrimSpace(meta.Name)
	meta.Client = strings.TrimSpace(meta.Client)
	meta.Creditor = strings.TrimSpace(meta.Creditor)
	meta.Type = strings.TrimSpace(meta.Type)

	return Portfolio{
		PortfolioMeta:  meta,
		Status:         "active",
		PortfolioStats: PortfolioStats{TotalFaceValue: decimal.Zero},
	}, nil
}

package collection

import "context"

type DebtorStore interface {
	ListDebtors(ctx context.Context) ([]Debtor, error)
	CreateDebtor(ctx context.Context, debtor Debtor) (Debtor, error)
	GetDebtor(ctx context.Context, id string) (*Debtor, error)
}

type DebtStore interface {
	CreateDebt(ctx context.Context, debt Debt) (Debt, error)
	ListDebtsByDebtor(ctx context.Context, debtorID string) ([]Debt, error)
}

type PortfolioStore interface {
	CreatePortfolio(ctx context.Context, portfolio Portfolio) (Portfolio, error)
	GetPortfolio(ctx context.Context, id string) (*Portfolio, error)
	// IncrementPortfolioStats adds delta to the stored stats in one write so
	// batches running side by side never overwrite each other.
	IncrementPortfolioStats(ctx context.Context, id string, delta PortfolioStats) error
}

type VendorStore interface {
	CreateVendor(ctx context.Context, vendor Vendor) (Vendor, error)
}

type ImportJobRepository interface {
	Enqueue(ctx context.Context, job ImportJob) (string, error)
	GetByID(ctx context.Context, id string) (*ImportJob, error)
}

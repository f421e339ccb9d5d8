package records

import "errors"

var (
	ErrInvalidDebtorID    = errors.New("invalid debtor id")
	ErrDebtorNotFound     = errors.New("debtor not found")
	ErrGetDebtorByID      = errors.New("failed to get debtor by id")
	ErrInvalidPortfolioID = errors.New("invalid portfolio id")
	ErrPortfolioNotFound  = errors.New("portfolio not found")
	ErrGetPortfolioByID   = errors.New("failed to get portfolio by id")
)

package collection

import "errors"

var (
	ErrMissingName       = errors.New("name is required")
	ErrInvalidPortfolio  = errors.New("invalid portfolio")
	ErrDebtorNotFound    = errors.New("debtor not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrImportJobNotFound = errors.New("import job not found")

	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file is empty")
	ErrMissingHeaders    = errors.New("file has no header row")
	ErrUnreadableFile    = errors.New("file cannot be read")
)

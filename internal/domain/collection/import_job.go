package collection

type ImportKind string

const (
	ImportKindPortfolio ImportKind = "portfolio"
	ImportKindDebts     ImportKind = "debts"
	ImportKindVendors   ImportKind = "vendors"
)

func (k ImportKind) Valid() bool {
	switch k {
	case ImportKindPortfolio, ImportKindDebts, ImportKindVendors:
		return true
	}
	return false
}

const (
	ImportStatusQueued    = "queued"
	ImportStatusRunning   = "running"
	ImportStatusSucceeded = "succeeded"
	ImportStatusFailed    = "failed"
)

// Table is a decoded spreadsheet: the first line as headers and every
// following non-blank line as a row.
type Table struct {
	Headers []string
	Rows    [][]string
}

type ImportJob struct {
	ID          string
	Kind        ImportKind
	SourcePath  string
	Mapping     map[string]string
	PortfolioID string
	Portfolio   *PortfolioMeta
	Status      string
	Attempts    int
	MaxAttempts int
	Progress    ImportProgress
	Errors      []string
	Message     string
}

type ImportProgress struct {
	ProcessedCount int64
	SuccessCount   int64
	FailedCount    int64
}

type ImportSummary struct {
	ImportProgress
	PortfolioID string
	Errors      []string
}

package imports

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

// Stores groups the record stores an import writes to.
type Stores struct {
	Debtors    domain.DebtorStore
	Debts      domain.DebtStore
	Portfolios domain.PortfolioStore
	Vendors    domain.VendorStore
}

// Batch is one decoded file together with the confirmed mapping.
type Batch struct {
	Headers []string
	Rows    [][]string
	Mapping FieldMapping
}

type ImportResult struct {
	Success     int      `json:"success"`
	Errors      []string `json:"errors"`
	PortfolioID string   `json:"portfolio_id,omitempty"`
}

type Progress struct {
	Processed int
	Success   int
	Failed    int
}

// ProgressFunc is called after every row. A non-nil error stops the batch.
type ProgressFunc func(ctx context.Context, p Progress) error

// Orchestrator commits batches row by row. Each row is independent: a row
// that fails validation or persistence is reported and the batch moves on,
// and rows already written are never rolled back.
type Orchestrator struct {
	stores Stores
	logger *zap.Logger
}

func NewOrchestrator(stores Stores, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{stores: stores, logger: logger}
}

// ImportPortfolio creates a new portfolio from meta and imports every row
// as one of its cases.
func (o *Orchestrator) ImportPortfolio(ctx context.Context, batch Batch, meta domain.PortfolioMeta, progress ProgressFunc) (ImportResult, error) {
	transformer, err := o.prepare(domain.ImportKindPortfolio, batch)
	if err != nil {
		return ImportResult{Errors: []string{}}, err
	}

	portfolio, err := domain.NewPortfolio(meta)
	if err != nil {
		return ImportResult{Errors: []string{}}, fmt.Errorf("%w: %v", ErrInvalidPortfolio, err)
	}
	if portfolio.Client == "" {
		portfolio.Client = firstClientName(transformer, batch.Rows)
	}

	lookup, err := o.loadDebtors(ctx)
	if err != nil {
		return ImportResult{Errors: []string{}}, err
	}

	created, err := o.stores.Portfolios.CreatePortfolio(ctx, portfolio)
	if err != nil {
		return ImportResult{Errors: []string{}}, fmt.Errorf("%w: create portfolio: %v", ErrPrepareBatch, err)
	}

	o.logger.Info("portfolio import started",
		zap.String("portfolio_id", created.ID),
		zap.String("portfolio_name", created.Name),
		zap.Int("rows", len(batch.Rows)))

	return o.importCases(ctx, transformer, batch.Rows, created, lookup, progress)
}

// ImportDebts adds cases to an existing portfolio. Its stats grow by the
// cases this batch created, on top of whatever the store holds when the
// batch finishes.
func (o *Orchestrator) ImportDebts(ctx context.Context, batch Batch, portfolioID string, progress ProgressFunc) (ImportResult, error) {
	transformer, err := o.prepare(domain.ImportKindDebts, batch)
	if err != nil {
		return ImportResult{Errors: []string{}}, err
	}

	portfolio, err := o.stores.Portfolios.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return ImportResult{Errors: []string{}}, fmt.Errorf("%w: get portfolio %s: %v", ErrPrepareBatch, portfolioID, err)
	}

	lookup, err := o.loadDebtors(ctx)
	if err != nil {
		return ImportResult{Errors: []string{}}, err
	}

	o.logger.Info("debt import started",
		zap.String("portfolio_id", portfolio.ID),
		zap.Int("rows", len(batch.Rows)))

	return o.importCases(ctx, transformer, batch.Rows, *portfolio, lookup, progress)
}

// ImportVendors creates one vendor per row.
func (o *Orchestrator) ImportVendors(ctx context.Context, batch Batch, progress ProgressFunc) (ImportResult, error) {
	transformer, err := o.prepare(domain.ImportKindVendors, batch)
	if err != nil {
		return ImportResult{Errors: []string{}}, err
	}

	result := ImportResult{Errors: []string{}}
	for i, row := range batch.Rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if rowErr := o.importVendorRow(ctx, transformer, row); rowErr != nil {
			result.Errors = append(result.Errors, (&RowError{Row: i + 1, Err: rowErr}).Error())
		} else {
			result.Success++
		}

		if err := report(ctx, progress, i+1, result); err != nil {
			return result, err
		}
	}

	o.logger.Info("vendor import finished",
		zap.Int("success", result.Success),
		zap.Int("failed", len(result.Errors)))

	return result, nil
}

func (o *Orchestrator) importVendorRow(ctx context.Context, transformer *Transformer, row []string) error {
	candidate, err := transformer.Transform(row)
	if err != nil {
		return err
	}
	if _, err := o.stores.Vendors.CreateVendor(ctx, candidate.Vendor); err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}
	return nil
}

func (o *Orchestrator) prepare(kind domain.ImportKind, batch Batch) (*Transformer, error) {
	if len(batch.Headers) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportFile, domain.ErrMissingHeaders)
	}

	transformer, err := NewTransformer(kind, batch.Headers, batch.Mapping)
	if err != nil {
		return nil, err
	}
	if err := transformer.Covers(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	return transformer, nil
}

func (o *Orchestrator) loadDebtors(ctx context.Context) (*debtorLookup, error) {
	existing, err := o.stores.Debtors.ListDebtors(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list debtors: %v", ErrPrepareBatch, err)
	}
	lookup := newDebtorLookup()
	for _, d := range existing {
		lookup.add(d)
	}
	return lookup, nil
}

func (o *Orchestrator) importCases(
	ctx context.Context,
	transformer *Transformer,
	rows [][]string,
	portfolio domain.Portfolio,
	lookup *debtorLookup,
	progress ProgressFunc,
) (ImportResult, error) {
	result := ImportResult{Errors: []string{}, PortfolioID: portfolio.ID}
	var added domain.PortfolioStats

	var stopErr error
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}

		debt, rowErr := o.importCaseRow(ctx, transformer, row, portfolio.ID, lookup)
		if rowErr != nil {
			result.Errors = append(result.Errors, (&RowError{Row: i + 1, Err: rowErr}).Error())
			o.logger.Debug("import row rejected", zap.Int("row", i+1), zap.Error(rowErr))
		} else {
			result.Success++
			added = added.Add(debt)
		}

		if err := report(ctx, progress, i+1, result); err != nil {
			stopErr = err
			break
		}
	}

	// Stats reflect whatever was created, including after an interruption.
	if result.Success > 0 {
		if err := o.stores.Portfolios.IncrementPortfolioStats(context.WithoutCancel(ctx), portfolio.ID, added); err != nil {
			return result, fmt.Errorf("%w: update portfolio stats: %v", ErrFinalizeBatch, err)
		}
	}

	o.logger.Info("case import finished",
		zap.String("portfolio_id", portfolio.ID),
		zap.Int("success", result.Success),
		zap.Int("failed", len(result.Errors)),
		zap.Int64("accounts_added", added.AccountCount),
		zap.String("face_value_added", added.TotalFaceValue.StringFixed(2)))

	return result, stopErr
}

func (o *Orchestrator) importCaseRow(
	ctx context.Context,
	transformer *Transformer,
	row []string,
	portfolioID string,
	lookup *debtorLookup,
) (domain.Debt, error) {
	candidate, err := transformer.Transform(row)
	if err != nil {
		return domain.Debt{}, err
	}

	debtor, found := lookup.find(candidate.Debtor.Name, candidate.Debtor.Email)
	if !found {
		debtor, err = o.stores.Debtors.CreateDebtor(ctx, candidate.Debtor)
		if err != nil {
			return domain.Debt{}, fmt.Errorf("create debtor: %w", err)
		}
		lookup.add(debtor)
	}

	debt := candidate.Debt
	debt.PortfolioID = portfolioID
	debt.DebtorID = debtor.ID

	created, err := o.stores.Debts.CreateDebt(ctx, debt)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return created, nil
}

func report(ctx context.Context, progress ProgressFunc, processed int, result ImportResult) error {
	if progress == nil {
		return nil
	}
	return progress(ctx, Progress{
		Processed: processed,
		Success:   result.Success,
		Failed:    len(result.Errors),
	})
}

func firstClientName(transformer *Transformer, rows [][]string) string {
	for _, row := range rows {
		if client := transformer.cell(row, FieldClientName); client != "" {
			return client
		}
	}
	return ""
}

// debtorLookup resolves a debtor by exact name or, failing that, exact
// non-empty email. Two different people sharing a name resolve to the
// first one seen.
type debtorLookup struct {
	byName  map[string]domain.Debtor
	byEmail map[string]domain.Debtor
}

func newDebtorLookup() *debtorLookup {
	return &debtorLookup{
		byName:  make(map[string]domain.Debtor),
		byEmail: make(map[string]domain.Debtor),
	}
}

func (l *debtorLookup) add(d domain.Debtor) {
	if _, ok := l.byName[d.Name]; !ok && d.Name != "" {
		l.byName[d.Name] = d
	}
	if _, ok := l.byEmail[d.Email]; !ok && d.Email != "" {
		l.byEmail[d.Email] = d
	}
}

func (l *debtorLookup) find(name, email string) (domain.Debtor, bool) {
	if d, ok := l.byName[name]; ok && name != "" {
		return d, true
	}
	if d, ok := l.byEmail[email]; ok && email != "" {
		return d, true
	}
	return domain.Debtor{}, false
}

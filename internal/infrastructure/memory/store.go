package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

// Store keeps every record in process memory. It backs dry runs of the
// CLI and the pipeline tests.
type Store struct {
	mu sync.Mutex

	debtors    map[string]domain.Debtor
	debtorSeq  []string
	debts      map[string]domain.Debt
	debtSeq    []string
	portfolios map[string]domain.Portfolio
	vendors    map[string]domain.Vendor
}

func NewStore() *Store {
	return &Store{
		debtors:    make(map[string]domain.Debtor),
		debts:      make(map[string]domain.Debt),
		portfolios: make(map[string]domain.Portfolio),
		vendors:    make(map[string]domain.Vendor),
	}
}

func (s *Store) ListDebtors(ctx context.Context) ([]domain.Debtor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Debtor, 0, len(s.debtorSeq))
	for _, id := range s.debtorSeq {
		out = append(out, s.debtors[id])
	}
	return out, nil
}

func (s *Store) CreateDebtor(ctx context.Context, debtor domain.Debtor) (domain.Debtor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	debtor.ID = uuid.NewString()
	debtor.Debts = nil
	s.debtors[debtor.ID] = debtor
	s.debtorSeq = append(s.debtorSeq, debtor.ID)
	return debtor, nil
}

func (s *Store) GetDebtor(ctx context.Context, id string) (*domain.Debtor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	debtor, ok := s.debtors[id]
	if !ok {
		return nil, domain.ErrDebtorNotFound
	}
	debtor.Debts = s.debtsOf(id)
	return &debtor, nil
}

func (s *Store) CreateDebt(ctx context.Context, debt domain.Debt) (domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	debt.ID = uuid.NewString()
	s.debts[debt.ID] = debt
	s.debtSeq = append(s.debtSeq, debt.ID)
	return debt, nil
}

func (s *Store) ListDebtsByDebtor(ctx context.Context, debtorID string) ([]domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.debtsOf(debtorID), nil
}

func (s *Store) debtsOf(debtorID string) []domain.Debt {
	out := make([]domain.Debt, 0)
	for _, id := range s.debtSeq {
		if d := s.debts[id]; d.DebtorID == debtorID {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) CreatePortfolio(ctx context.Context, portfolio domain.Portfolio) (domain.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio.ID = uuid.NewString()
	s.portfolios[portfolio.ID] = portfolio
	return portfolio, nil
}

func (s *Store) GetPortfolio(ctx context.Context, id string) (*domain.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio, ok := s.portfolios[id]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	return &portfolio, nil
}

func (s *Store) IncrementPortfolioStats(ctx context.Context, id string, delta domain.PortfolioStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio, ok := s.portfolios[id]
	if !ok {
		return domain.ErrPortfolioNotFound
	}
	portfolio.AccountCount += delta.AccountCount
	portfolio.TotalFaceValue = portfolio.TotalFaceValue.Add(delta.TotalFaceValue)
	s.portfolios[id] = portfolio
	return nil
}

func (s *Store) CreateVendor(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vendor.ID = uuid.NewString()
	s.vendors[vendor.ID] = vendor
	return vendor, nil
}

// Vendors returns every stored vendor ordered by name.
func (s *Store) Vendors() []domain.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Debts returns every stored case in creation order.
func (s *Store) Debts() []domain.Debt {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Debt, 0, len(s.debtSeq))
	for _, id := range s.debtSeq {
		out = append(out, s.debts[id])
	}
	return out
}


package imports

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type RunInput struct {
	Kind        domain.ImportKind
	Table       domain.Table
	Mapping     map[string]string
	PortfolioID string
	Portfolio   *domain.PortfolioMeta
}

// Run resolves the mapping (auto-mapping the headers when none is given)
// and dispatches to the importer for the kind.
func (o *Orchestrator) Run(ctx context.Context, in RunInput, progress ProgressFunc) (ImportResult, error) {
	mapping, err := ResolveMapping(in.Kind, in.Table.Headers, in.Mapping)
	if err != nil {
		return ImportResult{Errors: []string{}}, err
	}

	batch := Batch{Headers: in.Table.Headers, Rows: in.Table.Rows, Mapping: mapping}

	switch in.Kind {
	case domain.ImportKindPortfolio:
		if in.Portfolio == nil {
			return ImportResult{Errors: []string{}}, ErrInvalidPortfolio
		}
		return o.ImportPortfolio(ctx, batch, *in.Portfolio, progress)
	case domain.ImportKindDebts:
		if in.PortfolioID == "" {
			return ImportResult{Errors: []string{}}, ErrInvalidPortfolio
		}
		return o.ImportDebts(ctx, batch, in.PortfolioID, progress)
	case domain.ImportKindVendors:
		return o.ImportVendors(ctx, batch, progress)
	}
	return ImportResult{Errors: []string{}}, ErrInvalidImportKind
}

// ResolveMapping validates an explicit mapping, or auto-maps when raw is
// empty, and checks that the result can satisfy the required fields.
func ResolveMapping(kind domain.ImportKind, headers []string, raw map[string]string) (FieldMapping, error) {
	if !kind.Valid() {
		return nil, ErrInvalidImportKind
	}

	var (
		mapping FieldMapping
		err     error
	)
	if len(raw) == 0 {
		mapping = AutoMap(kind, headers)
	} else if mapping, err = ParseFieldMapping(kind, raw); err != nil {
		return nil, err
	}

	transformer, err := NewTransformer(kind, headers, mapping)
	if err != nil {
		return nil, err
	}
	if err := transformer.Covers(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	return mapping, nil
}

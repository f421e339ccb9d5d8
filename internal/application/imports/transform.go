package imports

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

// Candidate is the typed record produced from one raw row. Debtor and Debt
// are filled for case imports, Vendor for vendor imports.
type Candidate struct {
	ClientName string
	Debtor     domain.Debtor
	Debt       domain.Debt
	Vendor     domain.Vendor
}

// Transformer turns raw rows into candidates for one header layout.
type Transformer struct {
	kind    domain.ImportKind
	columns map[CanonicalField]int
}

// NewTransformer resolves the mapping against the header positions. Mapping
// entries naming a header the file does not have are ignored.
func NewTransformer(kind domain.ImportKind, headers []string, mapping FieldMapping) (*Transformer, error) {
	if !kind.Valid() {
		return nil, ErrInvalidImportKind
	}

	position := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, seen := position[h]; !seen {
			position[h] = i
		}
	}

	columns := make(map[CanonicalField]int, len(mapping))
	for header, field := range mapping {
		if _, ok := lookupField(kind, field); !ok {
			return nil, fmt.Errorf("%w: unknown field %q for %s import", ErrInvalidMapping, field, kind)
		}
		idx, ok := position[header]
		if !ok {
			continue
		}
		if _, dup := columns[field]; dup {
			return nil, fmt.Errorf("%w: field %q mapped more than once", ErrInvalidMapping, field)
		}
		columns[field] = idx
	}

	return &Transformer{kind: kind, columns: columns}, nil
}

// Covers reports whether the mapping can ever satisfy the required fields.
func (t *Transformer) Covers() error {
	if t.kind == domain.ImportKindVendors {
		if !t.has(FieldVendorName) {
			return fmt.Errorf("%w: %s", ErrUnmappedRequirement, FieldVendorName)
		}
		return nil
	}

	if !t.has(FieldDebtorName) && !(t.has(FieldFirstName) && t.has(FieldLastName)) {
		return fmt.Errorf("%w: %s", ErrUnmappedRequirement, FieldDebtorName)
	}
	if !t.has(FieldAccountNumber) {
		return fmt.Errorf("%w: %s", ErrUnmappedRequirement, FieldAccountNumber)
	}
	if !t.has(FieldOriginalBalance) && !t.has(FieldCurrentBalance) {
		return fmt.Errorf("%w: %s", ErrUnmappedRequirement, FieldOriginalBalance)
	}
	return nil
}

func (t *Transformer) Transform(row []string) (Candidate, error) {
	if t.kind == domain.ImportKindVendors {
		return t.transformVendor(row)
	}
	return t.transformCase(row)
}

func (t *Transformer) transformCase(row []string) (Candidate, error) {
	name := t.cell(row, FieldDebtorName)
	if name == "" {
		first := t.cell(row, FieldFirstName)
		last := t.cell(row, FieldLastName)
		if first == "" || last == "" {
			return Candidate{}, ErrMissingDebtorName
		}
		name = strings.TrimSpace(first + " " + last)
	}

	account := t.cell(row, FieldAccountNumber)
	if account == "" {
		return Candidate{}, ErrMissingAccount
	}

	original, hasOriginal := t.balance(row, FieldOriginalBalance)
	current, hasCurrent := t.balance(row, FieldCurrentBalance)
	switch {
	case !hasOriginal && hasCurrent:
		original = current
	case hasOriginal && !hasCurrent:
		current = original
	}
	if original.IsZero() && current.IsZero() {
		return Candidate{}, ErrZeroBalance
	}

	debtor, err := domain.NewDebtor(name, t.cell(row, FieldEmail), t.cell(row, FieldPhone), domain.Address{
		Street:  t.cell(row, FieldAddress),
		City:    t.cell(row, FieldCity),
		State:   t.cell(row, FieldState),
		ZipCode: t.cell(row, FieldZipCode),
	})
	if err != nil {
		return Candidate{}, err
	}

	return Candidate{
		ClientName: t.cell(row, FieldClientName),
		Debtor:     debtor,
		Debt: domain.Debt{
			AccountNumber:    account,
			OriginalBalance:  original,
			CurrentBalance:   current,
			OriginalCreditor: t.cell(row, FieldOriginalCreditor),
			ChargeOffDate:    ParseDate(t.cell(row, FieldChargeOffDate)),
			LastPaymentDate:  ParseDate(t.cell(row, FieldLastPaymentDate)),
			Status:           domain.ParseDebtStatus(t.cell(row, FieldStatus)),
			Priority:         domain.ParseDebtPriority(t.cell(row, FieldPriority)),
		},
	}, nil
}

func (t *Transformer) transformVendor(row []string) (Candidate, error) {
	name := t.cell(row, FieldVendorName)
	if name == "" {
		return Candidate{}, ErrMissingVendorName
	}

	vendor, err := domain.NewVendor(domain.Vendor{
		Name:        name,
		ContactName: t.cell(row, FieldContactName),
		Email:       t.cell(row, FieldEmail),
		Phone:       t.cell(row, FieldPhone),
		Address: domain.Address{
			Street:  t.cell(row, FieldAddress),
			City:    t.cell(row, FieldCity),
			State:   t.cell(row, FieldState),
			ZipCode: t.cell(row, FieldZipCode),
		},
		ServiceType: t.cell(row, FieldServiceType),
		Status:      t.cell(row, FieldStatus),
	})
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Vendor: vendor}, nil
}

func (t *Transformer) has(field CanonicalField) bool {
	_, ok := t.columns[field]
	return ok
}

// cell returns the trimmed value of a mapped field. Unmapped fields and
// cells past the end of a short row read as "".
func (t *Transformer) cell(row []string, field CanonicalField) string {
	idx, ok := t.columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// balance reports the parsed amount and whether the cell had any content.
func (t *Transformer) balance(row []string, field CanonicalField) (decimal.Decimal, bool) {
	raw := t.cell(row, field)
	if raw == "" {
		return decimal.Zero, false
	}
	return ParseBalance(raw), true
}

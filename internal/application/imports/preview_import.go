package imports

import (
	"context"
	"fmt"
	"io"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type TableDecoder interface {
	Decode(r io.Reader, filename string) (domain.Table, error)
}

type PreviewImportInput struct {
	Kind     domain.ImportKind
	Filename string
	Content  io.Reader
}

type PreviewImportOutput struct {
	Kind      domain.ImportKind `json:"kind"`
	Headers   []string          `json:"headers"`
	Mapping   map[string]string `json:"mapping"`
	Unmapped  []string          `json:"unmapped"`
	Missing   []string          `json:"missing_required"`
	Fields    []FieldSpec       `json:"fields"`
	Rows      [][]string        `json:"rows"`
	TotalRows int               `json:"total_rows"`
}

type PreviewImport interface {
	Execute(ctx context.Context, in PreviewImportInput) (PreviewImportOutput, error)
}

type previewImport struct {
	decoder TableDecoder
	rows    int
}

func NewPreviewImport(decoder TableDecoder, rows int) PreviewImport {
	if rows <= 0 {
		rows = 5
	}
	return &previewImport{decoder: decoder, rows: rows}
}

func (uc *previewImport) Execute(ctx context.Context, in PreviewImportInput) (PreviewImportOutput, error) {
	if !in.Kind.Valid() {
		return PreviewImportOutput{}, ErrInvalidImportKind
	}

	table, err := uc.decoder.Decode(in.Content, in.Filename)
	if err != nil {
		return PreviewImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidImportFile, err)
	}

	mapping := AutoMap(in.Kind, table.Headers)

	unmapped := make([]string, 0)
	for _, h := range table.Headers {
		if _, ok := mapping[h]; !ok {
			unmapped = append(unmapped, h)
		}
	}

	rows := table.Rows
	if len(rows) > uc.rows {
		rows = rows[:uc.rows]
	}

	return PreviewImportOutput{
		Kind:      in.Kind,
		Headers:   table.Headers,
		Mapping:   mapping.Strings(),
		Unmapped:  unmapped,
		Missing:   MissingRequired(in.Kind, mapping),
		Fields:    Fields(in.Kind),
		Rows:      padRows(rows, len(table.Headers)),
		TotalRows: len(table.Rows),
	}, nil
}

// MissingRequired lists required fields the mapping leaves uncovered.
// debtor_name counts as covered when both name halves are mapped.
func MissingRequired(kind domain.ImportKind, mapping FieldMapping) []string {
	covered := make(map[CanonicalField]bool, len(mapping))
	for _, field := range mapping {
		covered[field] = true
	}
	if covered[FieldFirstName] && covered[FieldLastName] {
		covered[FieldDebtorName] = true
	}
	if covered[FieldCurrentBalance] {
		covered[FieldOriginalBalance] = true
	}

	missing := make([]string, 0)
	for _, spec := range Fields(kind) {
		if spec.Required && !covered[spec.Field] {
			missing = append(missing, string(spec.Field))
		}
	}
	return missing
}

func padRows(rows [][]string, width int) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

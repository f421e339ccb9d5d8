package imports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type DownloadTemplateInput struct {
	Kind   domain.ImportKind
	Format string
}

type DownloadTemplateOutput struct {
	Filename    string
	ContentType string
	Content     []byte
}

type DownloadTemplate interface {
	Execute(ctx context.Context, in DownloadTemplateInput) (DownloadTemplateOutput, error)
}

type TableEncoder interface {
	Encode(w io.Writer, format string, headers []string, rows [][]string) error
}

var templateContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type downloadTemplate struct {
	encoder TableEncoder
}

func NewDownloadTemplate(encoder TableEncoder) DownloadTemplate {
	return &downloadTemplate{encoder: encoder}
}

func (uc *downloadTemplate) Execute(ctx context.Context, in DownloadTemplateInput) (DownloadTemplateOutput, error) {
	if !in.Kind.Valid() {
		return DownloadTemplateOutput{}, ErrInvalidImportKind
	}

	format := strings.ToLower(strings.TrimSpace(in.Format))
	if format == "" {
		format = "csv"
	}
	contentType, ok := templateContentTypes[format]
	if !ok {
		return DownloadTemplateOutput{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}

	headers, rows := Template(in.Kind)

	var buf bytes.Buffer
	if err := uc.encoder.Encode(&buf, format, headers, rows); err != nil {
		return DownloadTemplateOutput{}, fmt.Errorf("encode template: %w", err)
	}

	return DownloadTemplateOutput{
		Filename:    fmt.Sprintf("%s_import_template.%s", in.Kind, format),
		ContentType: contentType,
		Content:     buf.Bytes(),
	}, nil
}

// Template returns the canonical header row and example rows for a kind.
// Only fields with example values are part of the template.
func Template(kind domain.ImportKind) ([]string, [][]string) {
	var (
		headers []string
		rows    [][]string
	)
	for _, spec := range Fields(kind) {
		if len(spec.Example) == 0 {
			continue
		}
		headers = append(headers, string(spec.Field))
		for i, value := range spec.Example {
			for len(rows) <= i {
				rows = append(rows, nil)
			}
			rows[i] = append(rows[i], value)
		}
	}
	return headers, rows
}

package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromFilename picks the decoder from the file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Ext(name))
}

// TableDecoder reads CSV or XLSX content into a domain.Table. XLSX files
// are read from their first sheet.
type TableDecoder struct{}

func NewTableDecoder() *TableDecoder {
	return &TableDecoder{}
}

func (d *TableDecoder) Decode(r io.Reader, filename string) (domain.Table, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return domain.Table{}, err
	}

	var records [][]string
	switch format {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatXLSX:
		records, err = readXLSX(r)
	}
	if err != nil {
		return domain.Table{}, err
	}

	return buildTable(records)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %v", domain.ErrUnreadableFile, err)
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open xlsx: %v", domain.ErrUnreadableFile, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyFile
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", domain.ErrUnreadableFile, sheets[0], err)
	}
	return rows, nil
}

func buildTable(records [][]string) (domain.Table, error) {
	records = dropBlankRows(records)
	if len(records) == 0 {
		return domain.Table{}, domain.ErrEmptyFile
	}

	headers := make([]string, len(records[0]))
	hasHeader := false
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = strings.TrimSpace(h)
		if headers[i] != "" {
			hasHeader = true
		}
	}
	if !hasHeader {
		return domain.Table{}, domain.ErrMissingHeaders
	}

	return domain.Table{Headers: headers, Rows: records[1:]}, nil
}

func dropBlankRows(records [][]string) [][]string {
	out := records[:0]
	for _, rec := range records {
		blank := true
		for _, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

// TableEncoder writes headers and rows as CSV or XLSX.
type TableEncoder struct{}

func NewTableEncoder() *TableEncoder {
	return &TableEncoder{}
}

func (e *TableEncoder) Encode(w io.Writer, format string, headers []string, rows [][]string) error {
	switch Format(strings.ToLower(format)) {
	case FormatCSV:
		return writeCSV(w, headers, rows)
	case FormatXLSX:
		return writeXLSX(w, headers, rows)
	}
	return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
}

func writeCSV(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

const templateSheet = "Import"

func writeXLSX(w io.Writer, headers []string, rows [][]string) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", templateSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	all := append([][]string{headers}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := book.SetSheetRow(templateSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := book.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

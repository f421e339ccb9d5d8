package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	infrafile "github.com/mohammadpnp/debt-import/internal/infrastructure/file"
	"github.com/mohammadpnp/debt-import/internal/logging"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "importctl",
		Short: "Preview, run and template debt-collection imports",
		Long: `importctl works on CSV and XLSX batches from the command line.

Available subcommands:
  preview  - Show the suggested column mapping for a file
  run      - Import a file into the record store
  template - Write an empty import template`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newPreviewCmd(), newRunCmd(opts), newTemplateCmd())
	return cmd
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	return logging.New(o.logLevel, true)
}

func decodeFile(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return infrafile.NewTableDecoder().Decode(f, path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseKind(raw string) (domain.ImportKind, error) {
	kind := domain.ImportKind(raw)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", app.ErrInvalidImportKind, raw)
	}
	return kind, nil
}

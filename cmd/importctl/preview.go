package main

import (
	"os"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	infrafile "github.com/mohammadpnp/debt-import/internal/infrastructure/file"
)

func newPreviewCmd() *cobra.Command {
	var (
		path string
		kind string
		rows int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the suggested column mapping for a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			importKind, err := parseKind(kind)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			out, err := app.NewPreviewImport(infrafile.NewTableDecoder(), rows).Execute(cmd.Context(), app.PreviewImportInput{
				Kind:     importKind,
				Filename: path,
				Content:  f,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "CSV or XLSX file to inspect")
	cmd.Flags().StringVar(&kind, "kind", "portfolio", "import kind (portfolio, debts, vendors)")
	cmd.Flags().IntVar(&rows, "rows", 5, "number of sample rows")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

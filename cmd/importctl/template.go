package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	infrafile "github.com/mohammadpnp/debt-import/internal/infrastructure/file"
)

func newTemplateCmd() *cobra.Command {
	var (
		kind   string
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty import template",
		RunE: func(cmd *cobra.Command, args []string) error {
			importKind, err := parseKind(kind)
			if err != nil {
				return err
			}

			tpl, err := app.NewDownloadTemplate(infrafile.NewTableEncoder()).Execute(cmd.Context(), app.DownloadTemplateInput{
				Kind:   importKind,
				Format: format,
			})
			if err != nil {
				return err
			}

			if out == "" {
				out = tpl.Filename
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(tpl.Content)
				return err
			}
			if err := os.WriteFile(out, tpl.Content, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "portfolio", "import kind (portfolio, debts, vendors)")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output path, - for stdout (default: the template file name)")
	return cmd
}

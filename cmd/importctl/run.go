package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	"github.com/mohammadpnp/debt-import/internal/bootstrap"
	"github.com/mohammadpnp/debt-import/internal/config"
	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/memory"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/repository"
)

type runOptions struct {
	path        string
	kind        string
	mapping     string
	portfolioID string
	meta        domain.PortfolioMeta
	dryRun      bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Import a file into the record store",
		Long: `Import a file row by row and print the summary.

With --dry-run the rows go to an in-memory store, so nothing is written
and no database is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			result, err := runImport(cmd.Context(), opts, logger)
			if werr := writeJSON(cmd.OutOrStdout(), result); werr != nil {
				return werr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.path, "file", "", "CSV or XLSX file to import")
	cmd.Flags().StringVar(&opts.kind, "kind", "portfolio", "import kind (portfolio, debts, vendors)")
	cmd.Flags().StringVar(&opts.mapping, "mapping", "", `explicit mapping as JSON, e.g. {"Acct":"account_number"}`)
	cmd.Flags().StringVar(&opts.portfolioID, "portfolio-id", "", "existing portfolio for a debts import")
	cmd.Flags().StringVar(&opts.meta.Name, "portfolio-name", "", "name of the portfolio to create")
	cmd.Flags().StringVar(&opts.meta.Client, "client", "", "portfolio client")
	cmd.Flags().StringVar(&opts.meta.Creditor, "creditor", "", "portfolio creditor")
	cmd.Flags().StringVar(&opts.meta.Type, "portfolio-type", "", "portfolio type")
	cmd.Flags().BoolVar(&opts.meta.Litigation, "litigation", false, "mark the portfolio as litigation")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "import into an in-memory store")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(ctx context.Context, opts *runOptions, logger *zap.Logger) (app.ImportResult, error) {
	empty := app.ImportResult{Errors: []string{}}

	kind, err := parseKind(opts.kind)
	if err != nil {
		return empty, err
	}

	var mapping map[string]string
	if opts.mapping != "" {
		if err := json.Unmarshal([]byte(opts.mapping), &mapping); err != nil {
			return empty, fmt.Errorf("%w: mapping is not a JSON object: %v", app.ErrInvalidMapping, err)
		}
	}

	table, err := decodeFile(opts.path)
	if err != nil {
		return empty, err
	}

	in := app.RunInput{
		Kind:        kind,
		Table:       table,
		Mapping:     mapping,
		PortfolioID: opts.portfolioID,
	}
	if kind == domain.ImportKindPortfolio {
		meta := opts.meta
		in.Portfolio = &meta
	}

	var stores app.Stores
	if opts.dryRun {
		store := memory.NewStore()
		stores = app.Stores{Debtors: store, Debts: store, Portfolios: store, Vendors: store}
		if kind == domain.ImportKindDebts && in.PortfolioID == "" {
			placeholder, err := store.CreatePortfolio(ctx, domain.Portfolio{PortfolioMeta: domain.PortfolioMeta{Name: "dry run"}})
			if err != nil {
				return empty, err
			}
			in.PortfolioID = placeholder.ID
		}
	} else {
		db, err := openDatabase(ctx)
		if err != nil {
			return empty, err
		}
		stores = bootstrap.NewStores(db)
	}

	progress := func(ctx context.Context, p app.Progress) error {
		logger.Debug("row processed",
			zap.Int("processed", p.Processed),
			zap.Int("success", p.Success),
			zap.Int("failed", p.Failed))
		return nil
	}

	result, err := app.NewOrchestrator(stores, logger).Run(ctx, in, progress)
	if err != nil {
		return result, err
	}
	logger.Info("import finished", zap.Int("success", result.Success), zap.Int("failed", len(result.Errors)))
	return result, nil
}

func openDatabase(ctx context.Context) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := repository.ApplySchema(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

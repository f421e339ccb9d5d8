package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	"github.com/mohammadpnp/debt-import/internal/config"
	infrafile "github.com/mohammadpnp/debt-import/internal/infrastructure/file"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/repository"
)

// NewImportWorker claims jobs through the pgx queue and writes records
// through the gorm stores.
func NewImportWorker(db *gorm.DB, pool *pgxpool.Pool, cfg config.ImportConfig, logger *zap.Logger) *app.ImportWorker {
	orchestrator := app.NewOrchestrator(NewStores(db), logger)

	return app.NewImportWorker(
		repository.NewImportJobQueue(pool),
		infrafile.NewLocalSource(cfg.BaseDir),
		infrafile.NewTableDecoder(),
		orchestrator,
		app.ImportWorkerConfig{
			Workers:       cfg.Workers,
			LeaseDuration: cfg.LeaseDuration(),
			ProgressEvery: cfg.ProgressEvery,
		},
		logger,
	)
}

package bootstrap

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	records "github.com/mohammadpnp/debt-import/internal/application/records"
	"github.com/mohammadpnp/debt-import/internal/config"
	infrafile "github.com/mohammadpnp/debt-import/internal/infrastructure/file"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/debt-import/internal/interfaces/http/echo"
)

func NewHTTPServer(db *gorm.DB, cfg config.ImportConfig, logger *zap.Logger) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(requestLogger(logger))
	server.Use(middleware.BodyLimit("10M"))

	decoder := infrafile.NewTableDecoder()
	source := infrafile.NewLocalSource(cfg.BaseDir)
	importJobRepo := repository.NewImportJobRepository(db)

	importHandler := httpecho.NewImportHandler(
		app.NewPreviewImport(decoder, cfg.PreviewRows),
		app.NewStartImport(decoder, source, importJobRepo, cfg.MaxAttempts),
		app.NewGetImportJob(importJobRepo),
	)
	templateHandler := httpecho.NewTemplateHandler(app.NewDownloadTemplate(infrafile.NewTableEncoder()))
	recordHandler := httpecho.NewRecordHandler(
		records.NewGetDebtorByID(repository.NewDebtorRepository(db)),
		records.NewGetPortfolioByID(repository.NewPortfolioRepository(db)),
	)

	httpecho.RegisterRoutes(server, importHandler, templateHandler, recordHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server
}

// NewStores wires the gorm repositories behind the record store ports.
func NewStores(db *gorm.DB) app.Stores {
	return app.Stores{
		Debtors:    repository.NewDebtorRepository(db),
		Debts:      repository.NewDebtRepository(db),
		Portfolios: repository.NewPortfolioRepository(db),
		Vendors:    repository.NewVendorRepository(db),
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

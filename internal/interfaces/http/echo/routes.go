package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, templateHandler *TemplateHandler, recordHandler *RecordHandler) {
	api := server.Group("/api/v1")

	api.POST("/imports/preview", importHandler.PreviewImport)
	api.POST("/imports", importHandler.StartImport)
	api.GET("/imports/:id", importHandler.GetImportJob)
	api.GET("/templates/:kind", templateHandler.DownloadTemplate)
	api.GET("/debtors/:id", recordHandler.GetDebtorByID)
	api.GET("/portfolios/:id", recordHandler.GetPortfolioByID)
}

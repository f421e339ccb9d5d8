package echo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type TemplateHandler struct {
	useCase app.DownloadTemplate
}

func NewTemplateHandler(useCase app.DownloadTemplate) *TemplateHandler {
	return &TemplateHandler{useCase: useCase}
}

func (h *TemplateHandler) DownloadTemplate(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.DownloadTemplateInput{
		Kind:   domain.ImportKind(c.Param("kind")),
		Format: c.QueryParam("format"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportKind) {
			return writeError(c, http.StatusBadRequest, "invalid_kind", "kind must be one of portfolio, debts, vendors")
		}
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			return writeError(c, http.StatusBadRequest, "invalid_format", "format must be csv or xlsx")
		}
		return writeError(c, http.StatusInternalServerError, "internal_error", "failed to build template")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Blob(http.StatusOK, out.ContentType, out.Content)
}

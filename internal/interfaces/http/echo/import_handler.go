package echo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type ImportHandler struct {
	preview app.PreviewImport
	start   app.StartImport
	getJob  app.GetImportJob
}

func NewImportHandler(preview app.PreviewImport, start app.StartImport, getJob app.GetImportJob) *ImportHandler {
	return &ImportHandler{preview: preview, start: start, getJob: getJob}
}

func (h *ImportHandler) PreviewImport(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "missing_file", "multipart field \"file\" is required")
	}
	src, err := header.Open()
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_file", "uploaded file cannot be read")
	}
	defer src.Close()

	out, err := h.preview.Execute(c.Request().Context(), app.PreviewImportInput{
		Kind:     domain.ImportKind(strings.TrimSpace(c.FormValue("kind"))),
		Filename: header.Filename,
		Content:  src,
	})
	if err != nil {
		return writeImportError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) StartImport(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "missing_file", "multipart field \"file\" is required")
	}

	var mapping map[string]string
	if raw := strings.TrimSpace(c.FormValue("mapping")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			return writeError(c, http.StatusBadRequest, "bad_request", "mapping must be a JSON object of header to field")
		}
	}

	var portfolio *domain.PortfolioMeta
	if raw := strings.TrimSpace(c.FormValue("portfolio")); raw != "" {
		portfolio = &domain.PortfolioMeta{}
		if err := json.Unmarshal([]byte(raw), portfolio); err != nil {
			return writeError(c, http.StatusBadRequest, "bad_request", "portfolio must be a JSON object")
		}
	}

	src, err := header.Open()
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_file", "uploaded file cannot be read")
	}
	defer src.Close()

	out, err := h.start.Execute(c.Request().Context(), app.StartImportInput{
		Kind:        domain.ImportKind(strings.TrimSpace(c.FormValue("kind"))),
		Filename:    header.Filename,
		Content:     src,
		Mapping:     mapping,
		PortfolioID: strings.TrimSpace(c.FormValue("portfolio_id")),
		Portfolio:   portfolio,
	})
	if err != nil {
		return writeImportError(c, err)
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

func (h *ImportHandler) GetImportJob(c echo.Context) error {
	out, err := h.getJob.Execute(c.Request().Context(), app.GetImportJobInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportJobID) {
			return writeError(c, http.StatusBadRequest, "invalid_job_id", "id must be a valid UUID")
		}
		if errors.Is(err, app.ErrImportJobNotFound) {
			return writeError(c, http.StatusNotFound, "not_found", "import job not found")
		}
		return writeError(c, http.StatusInternalServerError, "internal_error", "failed to get import job")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func writeImportError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidImportKind):
		return writeError(c, http.StatusBadRequest, "invalid_kind", "kind must be one of portfolio, debts, vendors")
	case errors.Is(err, app.ErrInvalidImportFile):
		return writeError(c, http.StatusBadRequest, "invalid_file", err.Error())
	case errors.Is(err, app.ErrInvalidPortfolio):
		return writeError(c, http.StatusBadRequest, "invalid_portfolio", err.Error())
	case errors.Is(err, app.ErrInvalidMapping):
		return writeError(c, http.StatusUnprocessableEntity, "invalid_mapping", err.Error())
	}
	return writeError(c, http.StatusInternalServerError, "internal_error", "failed to enqueue import job")
}

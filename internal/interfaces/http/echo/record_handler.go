package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/debt-import/internal/application/records"
)

type RecordHandler struct {
	getDebtor    app.GetDebtorByID
	getPortfolio app.GetPortfolioByID
}

func NewRecordHandler(getDebtor app.GetDebtorByID, getPortfolio app.GetPortfolioByID) *RecordHandler {
	return &RecordHandler{getDebtor: getDebtor, getPortfolio: getPortfolio}
}

func (h *RecordHandler) GetDebtorByID(c echo.Context) error {
	out, err := h.getDebtor.Execute(c.Request().Context(), app.GetDebtorByIDInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidDebtorID) {
			return writeError(c, http.StatusBadRequest, "invalid_debtor_id", "id must be a valid UUID")
		}
		if errors.Is(err, app.ErrDebtorNotFound) {
			return writeError(c, http.StatusNotFound, "not_found", "debtor not found")
		}
		return writeError(c, http.StatusInternalServerError, "internal_error", "failed to get debtor")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *RecordHandler) GetPortfolioByID(c echo.Context) error {
	out, err := h.getPortfolio.Execute(c.Request().Context(), app.GetPortfolioByIDInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidPortfolioID) {
			return writeError(c, http.StatusBadRequest, "invalid_portfolio_id", "id must be a valid UUID")
		}
		if errors.Is(err, app.ErrPortfolioNotFound) {
			return writeError(c, http.StatusNotFound, "not_found", "portfolio not found")
		}
		return writeError(c, http.StatusInternalServerError, "internal_error", "failed to get portfolio")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

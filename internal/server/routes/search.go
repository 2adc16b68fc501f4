package routes

import (
	"net/http"

	"github.com/imec-intel/hub/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// SearchHandler serves GET /search?q&type=... . type may repeat.
func SearchHandler(c echo.Context) error {
	q := c.QueryParam("q")
	types := c.QueryParams()["type"]

	cat := c.(*middleware.AppContext).App.Catalog
	items, err := cat.Search(c.Request().Context(), q, types)
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, itemsResponse{Items: items})
}

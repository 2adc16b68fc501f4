package routes

import (
	"io"
	"net/http"

	"github.com/imec-intel/hub/internal/server/middleware"
	"github.com/imec-intel/hub/pkg/catalog"

	"github.com/labstack/echo/v4"
)

type itemsResponse struct {
	Items any `json:"items"`
}

type collectionParams struct {
	Collection string `param:"collection" validate:"required"`
}

type recordParams struct {
	Collection string `param:"collection" validate:"required"`
	ID         string `param:"id" validate:"required"`
}

// ListHandler serves GET /:collection with the collection's filters.
func ListHandler(c echo.Context) error {
	params := new(collectionParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request params"})
	}

	f, err := catalog.ParseFilter(c.QueryParams())
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}

	cat := c.(*middleware.AppContext).App.Catalog
	items, err := cat.List(c.Request().Context(), params.Collection, f)
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, itemsResponse{Items: items})
}

// GetHandler serves GET /:collection/:id.
func GetHandler(c echo.Context) error {
	params := new(recordParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request params"})
	}

	cat := c.(*middleware.AppContext).App.Catalog
	rec, err := cat.Get(c.Request().Context(), params.Collection, params.ID)
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, rec)
}

// UpsertHandler serves POST /:collection. AuthMiddleware has already
// checked the shared secret.
func UpsertHandler(c echo.Context) error {
	type upsertResponse struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}

	collection := c.Param("collection")
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}

	cat := c.(*middleware.AppContext).App.Catalog
	id, err := cat.Upsert(c.Request().Context(), collection, body)
	if err != nil {
		return writeError(c, err, http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, upsertResponse{Status: "ok", ID: id})
}

// SchemaHandler serves GET /schema/:collection.
func SchemaHandler(c echo.Context) error {
	params := new(collectionParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request params"})
	}

	cat := c.(*middleware.AppContext).App.Catalog
	s, err := cat.Schema(params.Collection)
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, s)
}

// CollectionsHandler serves GET /collections.
func CollectionsHandler(c echo.Context) error {
	cat := c.(*middleware.AppContext).App.Catalog
	return c.JSON(http.StatusOK, itemsResponse{Items: cat.Collections()})
}

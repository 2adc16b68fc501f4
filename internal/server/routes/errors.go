package routes

import (
	"errors"
	"net/http"

	"github.com/imec-intel/hub/pkg/catalog"
	"github.com/imec-intel/hub/pkg/logger"
	"github.com/imec-intel/hub/pkg/store"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps catalog errors to HTTP responses. invalidStatus is the
// status for a *catalog.ValidationError: 422 for payloads, 400 for query
// parameters.
func writeError(c echo.Context, err error, invalidStatus int) error {
	var ve *catalog.ValidationError
	switch {
	case errors.Is(err, catalog.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid API key"})
	case errors.Is(err, catalog.ErrUnknownCollection), errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &ve):
		return c.JSON(invalidStatus, errorResponse{Error: ve.Reason, Field: ve.Field})
	default:
		logger.Error("Request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

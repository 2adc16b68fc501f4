package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the shared secret on write requests.
const APIKeyHeader = "X-API-KEY"

// AuthMiddleware rejects the request before its body is read unless the
// X-API-KEY header matches the configured secret.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		app := c.(*AppContext).App
		if err := app.Catalog.Authorize(c.Request().Header.Get(APIKeyHeader)); err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid API key"})
		}
		return next(c)
	}
}

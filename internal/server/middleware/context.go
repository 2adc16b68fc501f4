package middleware

import (
	"github.com/imec-intel/hub/pkg/catalog"

	"github.com/labstack/echo/v4"
)

type App struct {
	Catalog *catalog.Catalog
}

type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request context so handlers reach the
// shared catalog through c.(*AppContext).App.
func AppContextMiddleware(cat *catalog.Catalog) echo.MiddlewareFunc {
	app := &App{Catalog: cat}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}

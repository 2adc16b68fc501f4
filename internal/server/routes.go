package server

import (
	"github.com/imec-intel/hub/internal/server/middleware"
	"github.com/imec-intel/hub/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.GET("/search", routes.SearchHandler)
	e.GET("/collections", routes.CollectionsHandler)
	e.GET("/schema/:collection", routes.SchemaHandler)

	// Collection routes
	e.GET("/:collection", routes.ListHandler)
	e.GET("/:collection/:id", routes.GetHandler)
	e.POST("/:collection", routes.UpsertHandler, middleware.AuthMiddleware)
}

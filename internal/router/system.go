package router

import (
	"github.com/deppfellow/starwars-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// blog itself: sitemap, health and docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Sitemap.Sitemap)

	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/static/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}

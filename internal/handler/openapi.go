package handler

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.html static/openapi.json
var staticFiles embed.FS

// OpenAPIHandler serves the API docs UI and the document it renders.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page. Caching is disabled so edits to
// the docs show up on the next load.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	return h.serve(c, "static/openapi.html", echo.MIMETextHTMLCharsetUTF8)
}

// ServeOpenAPISpec serves the OpenAPI document the UI loads.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	return h.serve(c, "static/openapi.json", echo.MIMEApplicationJSON)
}

func (h *OpenAPIHandler) serve(c echo.Context, name, contentType string) error {
	data, err := staticFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.Blob(http.StatusOK, contentType, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/labstack/echo/v4"
)

// Route is one entry of the sitemap.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// SitemapResponse lists every registered endpoint.
type SitemapResponse struct {
	Routes []Route `json:"routes"`
}

type SitemapHandler struct {
	Handler
}

func NewSitemapHandler(s *server.Server) *SitemapHandler {
	return &SitemapHandler{Handler: NewHandler(s)}
}

// Sitemap lists the application routes sorted by path, then method.
// Echo's internal handlers (method not allowed, static wildcards) are
// left out.
func (h *SitemapHandler) Sitemap(c echo.Context) error {
	var routes []Route
	for _, r := range c.Echo().Routes() {
		if r.Method == echo.RouteNotFound || strings.Contains(r.Path, "*") {
			continue
		}
		routes = append(routes, Route{Method: r.Method, Path: r.Path})
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return c.JSON(http.StatusOK, SitemapResponse{Routes: routes})
}

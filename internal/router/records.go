package router

import (
	"github.com/deppfellow/starwars-api/internal/handler"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/labstack/echo/v4"
)

// crud is the route set every record type exposes.
type crud interface {
	Create() echo.HandlerFunc
	List() echo.HandlerFunc
	Get() echo.HandlerFunc
	Delete() echo.HandlerFunc
}

func registerRecordRoutes(r *echo.Echo, h *handler.Handlers) {
	registerCRUD(r, "/user", h.Users)
	registerCRUD(r, "/character", h.Characters)
	registerCRUD(r, "/planet", h.Planets)
	registerCRUD(r, "/vehicle", h.Vehicles)
}

func registerCRUD(r *echo.Echo, prefix string, h crud) {
	g := r.Group(prefix)
	g.POST("", h.Create())
	g.GET("", h.List())
	g.GET("/:id", h.Get())
	g.DELETE("/:id", h.Delete())
}

// registerFavoriteRoutes registers the listings and one add/remove pair
// per target kind, e.g. POST /user/:id/favorite/planet/:target_id.
func registerFavoriteRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/favorite", h.Favorites.List())
	r.GET("/user/:id/favorites", h.Favorites.ListForUser())

	for _, kind := range model.TargetKinds {
		path := "/user/:id/favorite/" + string(kind) + "/:target_id"
		r.POST(path, h.Favorites.Add(kind))
		r.DELETE(path, h.Favorites.Remove(kind))
	}
}

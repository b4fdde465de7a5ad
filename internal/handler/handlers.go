// Package handler is the HTTP layer. It binds and validates requests,
// runs each one inside a database session and calls the service layer.
package handler

import (
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
)

// Handlers groups all HTTP handlers so router setup takes one value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Sitemap    *SitemapHandler
	Users      *UserHandler
	Characters *EntityHandler[model.Character, *model.CreateCharacterPayload]
	Planets    *EntityHandler[model.Planet, *model.CreatePlanetPayload]
	Vehicles   *EntityHandler[model.Vehicle, *model.CreateVehiclePayload]
	Favorites  *FavoriteHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Sitemap: NewSitemapHandler(s),
		Users:   NewUserHandler(s, services.Users),
		Characters: NewEntityHandler(s, services.Characters, func() *model.CreateCharacterPayload {
			return &model.CreateCharacterPayload{}
		}),
		Planets: NewEntityHandler(s, services.Planets, func() *model.CreatePlanetPayload {
			return &model.CreatePlanetPayload{}
		}),
		Vehicles: NewEntityHandler(s, services.Vehicles, func() *model.CreateVehiclePayload {
			return &model.CreateVehiclePayload{}
		}),
		Favorites: NewFavoriteHandler(s, services.Favorites),
	}
}

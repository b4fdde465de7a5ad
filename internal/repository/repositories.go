package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"gorm.io/gorm"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users      *Table[model.User]
	Characters *Table[model.Character]
	Planets    *Table[model.Planet]
	Vehicles   *Table[model.Vehicle]
	Favorites  *FavoriteRepository
}

// NewRepositories builds every repository on the server's GORM handle.
func NewRepositories(s *server.Server) *Repositories {
	return newRepositories(s.DB.ORM)
}

func newRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewTable[model.User](db),
		Characters: NewTable[model.Character](db),
		Planets:    NewTable[model.Planet](db),
		Vehicles:   NewTable[model.Vehicle](db),
		Favorites:  NewFavoriteRepository(db),
	}
}

// TargetExists reports whether the record a favorite would point at exists.
func (r *Repositories) TargetExists(ctx context.Context, target model.Target) (bool, error) {
	switch target.Kind {
	case model.TargetCharacter:
		return r.Characters.Exists(ctx, target.ID)
	case model.TargetPlanet:
		return r.Planets.Exists(ctx, target.ID)
	case model.TargetVehicle:
		return r.Vehicles.Exists(ctx, target.ID)
	default:
		return false, fmt.Errorf("unknown favorite target kind %q", target.Kind)
	}
}

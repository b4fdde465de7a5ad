package service

import (
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type Services struct {
	Users      *UserService
	Characters *EntityService[model.Character]
	Planets    *EntityService[model.Planet]
	Vehicles   *EntityService[model.Vehicle]
	Favorites  *FavoriteService
}

func NewService(repos *repository.Repositories) *Services {
	return &Services{
		Users:      NewUserService(repos.Users, bcrypt.DefaultCost),
		Characters: NewEntityService(repos.Characters, "Character"),
		Planets:    NewEntityService(repos.Planets, "Planet"),
		Vehicles:   NewEntityService(repos.Vehicles, "Vehicle"),
		Favorites:  NewFavoriteService(repos),
	}
}

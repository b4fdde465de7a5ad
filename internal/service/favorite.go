package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
)

var favoriteExistsCode = "FAVORITE_ALREADY_EXISTS"

// FavoriteService manages the user to target links.
type FavoriteService struct {
	repos *repository.Repositories
}

func NewFavoriteService(repos *repository.Repositories) *FavoriteService {
	return &FavoriteService{repos: repos}
}

func userNotFound(id uint) error {
	return errs.NewNotFoundError(fmt.Sprintf("User %d not found", id), true, nil)
}

func targetNotFound(target model.Target) error {
	return errs.NewNotFoundError(fmt.Sprintf("%s %d not found", target.Kind.EntityName(), target.ID), true, nil)
}

func (s *FavoriteService) ensureUser(ctx context.Context, userID uint) error {
	ok, err := s.repos.Users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return userNotFound(userID)
	}
	return nil
}

// List returns every favorite of every user.
func (s *FavoriteService) List(ctx context.Context) ([]model.Favorite, error) {
	return s.repos.Favorites.List(ctx)
}

// ListForUser returns the user's favorites.
func (s *FavoriteService) ListForUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repos.Favorites.ListByUser(ctx, userID)
}

// Add links userID to target. Both must exist and the pair must be new.
// The table constraints back these checks up under concurrent writers.
func (s *FavoriteService) Add(ctx context.Context, userID uint, target model.Target) (*model.Favorite, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	ok, err := s.repos.TargetExists(ctx, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, targetNotFound(target)
	}

	_, err = s.repos.Favorites.FindByTarget(ctx, userID, target)
	switch {
	case err == nil:
		return nil, errs.NewConflictError(
			fmt.Sprintf("User %d already has %s as a favorite", userID, target), true, &favoriteExistsCode)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	fav, err := model.NewFavorite(userID, target)
	if err != nil {
		return nil, errs.NewBadRequestError(err.Error(), true, nil, nil)
	}

	if err := s.repos.Favorites.Add(ctx, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

// Remove deletes the favorite linking userID to target.
func (s *FavoriteService) Remove(ctx context.Context, userID uint, target model.Target) error {
	err := s.repos.Favorites.DeleteByTarget(ctx, userID, target)
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFoundError(
			fmt.Sprintf("User %d has no favorite %s", userID, target), true, nil)
	}
	return err
}

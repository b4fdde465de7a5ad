package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
	"gorm.io/gorm"
)

// FavoriteRepository adds per-user and per-target lookups to the
// favorites table.
type FavoriteRepository struct {
	*Table[model.Favorite]
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{Table: NewTable[model.Favorite](db)}
}

// ListByUser returns the user's favorites ordered by id.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	items := make([]model.Favorite, 0)
	if !storable(userID) {
		return items, nil
	}

	err := conn(ctx, r.db).Where("user_id = ?", userID).Order("id").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites of user %d: %w", userID, err)
	}
	return items, nil
}

func (r *FavoriteRepository) byTarget(ctx context.Context, userID uint, target model.Target) (*gorm.DB, error) {
	if !target.Kind.Valid() {
		return nil, fmt.Errorf("unknown favorite target kind %q", target.Kind)
	}
	if !storable(userID) || !storable(target.ID) {
		return nil, r.notFound()
	}
	// Column comes from the closed set of kinds, never from input.
	return conn(ctx, r.db).
		Where("user_id = ?", userID).
		Where(target.Kind.Column()+" = ?", target.ID), nil
}

// FindByTarget returns the favorite linking userID to target, or an
// error wrapping ErrNotFound.
func (r *FavoriteRepository) FindByTarget(ctx context.Context, userID uint, target model.Target) (*model.Favorite, error) {
	q, err := r.byTarget(ctx, userID, target)
	if err != nil {
		return nil, err
	}

	var fav model.Favorite
	err = q.First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.notFound()
	}
	if err != nil {
		return nil, fmt.Errorf("find favorite of user %d for %s: %w", userID, target, err)
	}
	return &fav, nil
}

// DeleteByTarget removes the favorite linking userID to target.
func (r *FavoriteRepository) DeleteByTarget(ctx context.Context, userID uint, target model.Target) error {
	q, err := r.byTarget(ctx, userID, target)
	if err != nil {
		return err
	}

	res := q.Delete(&model.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("delete favorite of user %d for %s: %w", userID, target, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound()
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
)

// EntityService is the create/list/get/delete service shared by the
// plain record types.
type EntityService[T model.Entity] struct {
	table *repository.Table[T]
	name  string
}

// NewEntityService builds a service over table. name is the entity name
// used in client messages, e.g. "Planet".
func NewEntityService[T model.Entity](table *repository.Table[T], name string) *EntityService[T] {
	return &EntityService[T]{table: table, name: name}
}

// Name is the entity name used in client messages.
func (s *EntityService[T]) Name() string {
	return s.name
}

func (s *EntityService[T]) notFound(id uint) error {
	return errs.NewNotFoundError(fmt.Sprintf("%s %d not found", s.name, id), true, nil)
}

func (s *EntityService[T]) Create(ctx context.Context, item *T) error {
	return s.table.Add(ctx, item)
}

func (s *EntityService[T]) List(ctx context.Context) ([]T, error) {
	return s.table.List(ctx)
}

func (s *EntityService[T]) Get(ctx context.Context, id uint) (*T, error) {
	item, err := s.table.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, s.notFound(id)
	}
	return item, err
}

func (s *EntityService[T]) Delete(ctx context.Context, id uint) error {
	err := s.table.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return s.notFound(id)
	}
	return err
}

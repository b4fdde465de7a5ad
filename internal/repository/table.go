package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/deppfellow/starwars-api/internal/model"
	"gorm.io/gorm"
)

// ErrNotFound reports that no row matched. Errors returned by the
// repositories wrap it as "table:<name>:..." so the error layer can name
// the entity.
var ErrNotFound = gorm.ErrRecordNotFound

// Table provides list/get/add/delete for one record type.
type Table[T model.Entity] struct {
	db    *gorm.DB
	table string
}

func NewTable[T model.Entity](db *gorm.DB) *Table[T] {
	var zero T
	return &Table[T]{db: db, table: zero.TableName()}
}

// storable reports whether id fits the BIGSERIAL id columns. Any other id
// cannot name a row, and sending it to the driver would fail encoding.
func storable(id uint) bool {
	return id > 0 && uint64(id) <= math.MaxInt64
}

func (t *Table[T]) notFound() error {
	return fmt.Errorf("table:%s:%w", t.table, ErrNotFound)
}

// List returns every row ordered by id. The slice is never nil.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := conn(ctx, t.db).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	return items, nil
}

// Get returns the row with id, or an error wrapping ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id uint) (*T, error) {
	if !storable(id) {
		return nil, t.notFound()
	}

	var item T
	err := conn(ctx, t.db).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, t.notFound()
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", t.table, id, err)
	}
	return &item, nil
}

// Exists reports whether a row with id exists.
func (t *Table[T]) Exists(ctx context.Context, id uint) (bool, error) {
	if !storable(id) {
		return false, nil
	}

	var count int64
	if err := conn(ctx, t.db).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s %d: %w", t.table, id, err)
	}
	return count > 0, nil
}

// Add inserts item and sets its id. Constraint violations are returned
// as the driver reported them.
func (t *Table[T]) Add(ctx context.Context, item *T) error {
	if err := conn(ctx, t.db).Create(item).Error; err != nil {
		return fmt.Errorf("table:%s: add: %w", t.table, err)
	}
	return nil
}

// Delete removes the row with id. Deleting a missing row is an error
// wrapping ErrNotFound.
func (t *Table[T]) Delete(ctx context.Context, id uint) error {
	if !storable(id) {
		return t.notFound()
	}

	res := conn(ctx, t.db).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %d: %w", t.table, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return t.notFound()
	}
	return nil
}

// Package model declares the persisted record types, their storage
// constraints and the typed request payloads that create them.
//
// JSON tags define each record's transport shape. Sensitive columns are
// tagged `json:"-"` and never leave the process.
package model

import "github.com/deppfellow/starwars-api/internal/validation"

// Entity is the set of record types the generic repository can store.
type Entity interface {
	User | Character | Planet | Vehicle | Favorite
	TableName() string
}

// Record is an Entity with a name: everything except Favorite.
type Record interface {
	User | Character | Planet | Vehicle
	TableName() string
	GetID() uint
	GetName() string
}

// GetByIDPayload addresses a single record through the `:id` path param.
// Any unsigned id is accepted; one that names no row is a not found.
type GetByIDPayload struct {
	ID uint `param:"id" json:"-"`
}

func (p *GetByIDPayload) Validate() error {
	return validation.Struct(p)
}

// ListPayload is the empty request of the list endpoints.
type ListPayload struct{}

func (p *ListPayload) Validate() error {
	return nil
}

// CreatedResponse is the envelope returned by create endpoints.
type CreatedResponse struct {
	Name string `json:"name"`
	Msg  string `json:"msg"`
}

// ListResponse wraps a collection under "response".
type ListResponse[T any] struct {
	Response []T `json:"response"`
}

// ItemResponse wraps a single record under "response".
type ItemResponse[T any] struct {
	Response T `json:"response"`
}

// DeletedResponse is returned by every delete endpoint.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

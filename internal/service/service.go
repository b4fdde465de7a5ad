// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, calls repository
// methods to interact with the data and turns missing records
// into NotFound errors that name the entity and id.
package service

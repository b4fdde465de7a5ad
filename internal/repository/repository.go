// Package repository handles all interactions with the database.
//
// It wraps GORM queries in per-table methods to fetch, persist
// or delete data, abstracting SQL away from the service layer.
// Queries run inside the request's Session when the context carries one.
package repository

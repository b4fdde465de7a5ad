// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver (and the
// sentinel errors of the ORM) and converts them into user-friendly
// API errors, e.g. a unique violation becomes a "Conflict" error.
package sqlerr

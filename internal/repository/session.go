package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrSessionClosed is returned when committing a session that already
// finished.
var ErrSessionClosed = errors.New("session already closed")

type sessionKey struct{}

// Session is a unit of work over one database transaction. Writes made
// through it become visible to other sessions only after Commit.
//
// A Session is not safe for concurrent use; each request owns its own.
type Session struct {
	tx     *gorm.DB
	closed bool
}

// BeginSession starts a transaction on db.
func BeginSession(ctx context.Context, db *gorm.DB) (*Session, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin session: %w", tx.Error)
	}
	return &Session{tx: tx}, nil
}

// Commit applies every pending write.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true

	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Rollback discards pending writes. It is a no-op once the session has
// been committed or rolled back, so it can always be deferred.
func (s *Session) Rollback() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback session: %w", err)
	}
	return nil
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the open session carried by ctx, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || s.closed {
		return nil, false
	}
	return s, true
}

// conn picks the handle a query should run on: the session's transaction
// when ctx carries one, db otherwise.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if s, ok := SessionFromContext(ctx); ok {
		return s.tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

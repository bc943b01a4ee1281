// Package store persists users and meetings in SQLite.
package store

import (
	"context"
	"errors"

	"github.com/isdelr/meetings/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore defines persistence operations for users.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	CountByEmail(ctx context.Context, email string) (int, error)
}

// MeetingStore defines persistence operations for meetings.
type MeetingStore interface {
	Create(ctx context.Context, meeting models.Meeting) (models.Meeting, error)
	FindByID(ctx context.Context, id int64) (models.Meeting, error)
	Update(ctx context.Context, id int64, fields models.MeetingFields) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]models.Meeting, error)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// Other constraint failures (NOT NULL, FOREIGN KEY) do not match.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

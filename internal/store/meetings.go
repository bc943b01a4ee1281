package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/meetings/internal/models"
)

// SQLiteMeetingStore implements MeetingStore on top of a SQLite database.
type SQLiteMeetingStore struct {
	db *sql.DB
}

// NewMeetingStore creates a new SQLiteMeetingStore.
func NewMeetingStore(db *sql.DB) *SQLiteMeetingStore {
	return &SQLiteMeetingStore{db: db}
}

const meetingColumns = "id, title, time, body, owner_id, created_at"

// Create inserts a meeting and returns it with its assigned ID.
func (s *SQLiteMeetingStore) Create(ctx context.Context, meeting models.Meeting) (models.Meeting, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO meetings (title, time, body, owner_id) VALUES (?, ?, ?, ?)",
		meeting.Title, meeting.Time, meeting.Body, meeting.OwnerID)
	if err != nil {
		return models.Meeting{}, fmt.Errorf("insert meeting: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Meeting{}, fmt.Errorf("read meeting id: %w", err)
	}
	return s.FindByID(ctx, id)
}

// FindByID retrieves a single meeting by its ID.
func (s *SQLiteMeetingStore) FindByID(ctx context.Context, id int64) (models.Meeting, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+meetingColumns+" FROM meetings WHERE id = ?", id)
	return scanMeeting(row)
}

// Update replaces the mutable fields of a meeting. The owner never changes.
func (s *SQLiteMeetingStore) Update(ctx context.Context, id int64, fields models.MeetingFields) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE meetings SET title = ?, time = ?, body = ? WHERE id = ?",
		fields.Title, fields.Time, fields.Body, id)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a meeting.
func (s *SQLiteMeetingStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM meetings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	return requireAffected(res)
}

// ListAll returns every meeting ordered by ID.
func (s *SQLiteMeetingStore) ListAll(ctx context.Context) ([]models.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+meetingColumns+" FROM meetings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	meetings := []models.Meeting{}
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	return meetings, rows.Err()
}

func scanMeeting(row scanner) (models.Meeting, error) {
	var meeting models.Meeting
	err := row.Scan(&meeting.ID, &meeting.Title, &meeting.Time, &meeting.Body, &meeting.OwnerID, &meeting.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Meeting{}, ErrNotFound
		}
		return models.Meeting{}, err
	}
	return meeting, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ MeetingStore = (*SQLiteMeetingStore)(nil)

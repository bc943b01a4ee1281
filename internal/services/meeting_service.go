package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/meetings/internal/auth"
	"github.com/isdelr/meetings/internal/models"
	"github.com/isdelr/meetings/internal/store"
)

// MeetingServiceProvider defines the interface for meeting services.
type MeetingServiceProvider interface {
	List(ctx context.Context) ([]models.Meeting, error)
	Get(ctx context.Context, id int64) (models.Meeting, error)
	Create(ctx context.Context, actor auth.Identity, fields models.MeetingFields) (models.Meeting, error)
	Update(ctx context.Context, actor auth.Identity, id int64, fields models.MeetingFields) error
	Delete(ctx context.Context, actor auth.Identity, id int64) error
}

// MeetingService provides meeting operations. Any user may read any meeting;
// only the creator may change or delete it.
type MeetingService struct {
	meetings store.MeetingStore
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(meetings store.MeetingStore) *MeetingService {
	return &MeetingService{meetings: meetings}
}

// List returns all meetings.
func (s *MeetingService) List(ctx context.Context) ([]models.Meeting, error) {
	return s.meetings.ListAll(ctx)
}

// Get retrieves a single meeting by its ID.
func (s *MeetingService) Get(ctx context.Context, id int64) (models.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return models.Meeting{}, notFound(err, id)
	}
	return meeting, nil
}

// Create stores a new meeting owned by actor.
func (s *MeetingService) Create(ctx context.Context, actor auth.Identity, fields models.MeetingFields) (models.Meeting, error) {
	if actor.UserID == 0 {
		return models.Meeting{}, auth.ErrUnauthorized
	}
	meeting := models.Meeting{OwnerID: actor.UserID}
	meeting.Apply(fields)

	created, err := s.meetings.Create(ctx, meeting)
	if err != nil {
		return models.Meeting{}, fmt.Errorf("failed to create meeting: %w", err)
	}
	return created, nil
}

// Update changes a meeting's fields if actor owns it.
func (s *MeetingService) Update(ctx context.Context, actor auth.Identity, id int64, fields models.MeetingFields) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.meetings.Update(ctx, id, fields); err != nil {
		return notFound(err, id)
	}
	return nil
}

// Delete removes a meeting if actor owns it.
func (s *MeetingService) Delete(ctx context.Context, actor auth.Identity, id int64) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.meetings.Delete(ctx, id); err != nil {
		return notFound(err, id)
	}
	return nil
}

func (s *MeetingService) authorize(ctx context.Context, actor auth.Identity, id int64) (models.Meeting, error) {
	meeting, err := s.Get(ctx, id)
	if err != nil {
		return models.Meeting{}, err
	}
	if err := auth.AuthorizeMutation(actor, meeting.OwnerID); err != nil {
		return models.Meeting{}, err
	}
	return meeting, nil
}

// notFound maps store.ErrNotFound to a *NotFoundError and passes other errors through.
func notFound(err error, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "Meeting", ID: id}
	}
	return err
}

var _ MeetingServiceProvider = (*MeetingService)(nil)

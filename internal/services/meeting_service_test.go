package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/meetings/internal/auth"
	"github.com/isdelr/meetings/internal/models"
)

var (
	owner    = auth.Identity{UserID: 7, Email: "owner@example.com"}
	stranger = auth.Identity{UserID: 8, Email: "stranger@example.com"}
)

func seedMeeting(t *testing.T, svc *MeetingService) models.Meeting {
	t.Helper()
	m, err := svc.Create(context.Background(), owner, models.MeetingFields{Title: "Standup", Time: "9am", Body: "daily"})
	require.NoError(t, err)
	return m
}

func TestMeetingService_CreateSetsOwner(t *testing.T) {
	svc := NewMeetingService(newMemMeetingStore())

	m := seedMeeting(t, svc)
	assert.Equal(t, owner.UserID, m.OwnerID)
	assert.Equal(t, "Standup", m.Title)

	_, err := svc.Create(context.Background(), auth.Identity{}, models.MeetingFields{Title: "x"})
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestMeetingService_OwnerMayMutate(t *testing.T) {
	meetings := newMemMeetingStore()
	svc := NewMeetingService(meetings)
	m := seedMeeting(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, owner, m.ID, models.MeetingFields{Title: "Retro", Time: "5pm", Body: "weekly"}))
	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Retro", got.Title)
	assert.Equal(t, owner.UserID, got.OwnerID)

	require.NoError(t, svc.Delete(ctx, owner, m.ID))
	assert.Empty(t, meetings.meetings)
}

func TestMeetingService_StrangerIsForbidden(t *testing.T) {
	meetings := newMemMeetingStore()
	svc := NewMeetingService(meetings)
	m := seedMeeting(t, svc)
	ctx := context.Background()

	err := svc.Update(ctx, stranger, m.ID, models.MeetingFields{Title: "Hijacked"})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	err = svc.Delete(ctx, stranger, m.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Title)
}

func TestMeetingService_ReadsAreNotOwnershipGated(t *testing.T) {
	svc := NewMeetingService(newMemMeetingStore())
	m := seedMeeting(t, svc)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, err := svc.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
}

func TestMeetingService_NotFound(t *testing.T) {
	svc := NewMeetingService(newMemMeetingStore())
	ctx := context.Background()

	var nfErr *NotFoundError

	_, err := svc.Get(ctx, 41)
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Meeting with id 41 not found", nfErr.Error())

	require.ErrorAs(t, svc.Update(ctx, owner, 42, models.MeetingFields{}), &nfErr)
	assert.Equal(t, int64(42), nfErr.ID)

	require.ErrorAs(t, svc.Delete(ctx, owner, 43), &nfErr)
	assert.Equal(t, int64(43), nfErr.ID)
}

func TestMeetingService_StorageErrorsPropagateOnce(t *testing.T) {
	meetings := newMemMeetingStore()
	svc := NewMeetingService(meetings)
	boom := errors.New("database is locked")
	meetings.err = boom

	err := svc.Update(context.Background(), owner, 1, models.MeetingFields{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, meetings.calls)

	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
}

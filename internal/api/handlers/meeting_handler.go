package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/meetings/internal/models"
	"github.com/isdelr/meetings/internal/services"
	"github.com/isdelr/meetings/internal/view"
)

// DefaultTimeLayout prefills the time field of the create form.
const DefaultTimeLayout = "Meeting at 03:04PM on January 02, 2006"

// MeetingHandler handles HTTP requests for meetings.
type MeetingHandler struct {
	pages
	service services.MeetingServiceProvider
	now     func() time.Time
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(service services.MeetingServiceProvider, views *view.Engine) *MeetingHandler {
	return &MeetingHandler{
		pages:   pages{views: views},
		service: service,
		now:     time.Now,
	}
}

type meetingRow struct {
	Meeting models.Meeting
	Mine    bool
}

// List shows every meeting. Only the caller's own meetings get edit links.
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	meetings, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "meetings.html", "Meetings", nil)
		return
	}

	rows := make([]meetingRow, 0, len(meetings))
	for _, m := range meetings {
		rows = append(rows, meetingRow{Meeting: m, Mine: m.OwnerID == identity.UserID})
	}
	h.render(w, r, http.StatusOK, "meetings.html", "Meetings", nil, rows)
}

// CreateForm renders the new meeting form.
func (h *MeetingHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentIdentity(w, r); !ok {
		return
	}
	data := models.MeetingFields{Time: h.now().Format(DefaultTimeLayout)}
	h.render(w, r, http.StatusOK, "meeting_create.html", "New meeting", nil, data)
}

// Create stores a meeting owned by the caller.
func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}
	fields, ok := h.parseFields(w, r)
	if !ok {
		return
	}

	meeting, err := h.service.Create(r.Context(), identity, fields)
	if err != nil {
		h.fail(w, r, err, "meeting_create.html", "New meeting", fields)
		return
	}

	log.Info().Int64("meeting_id", meeting.ID).Int64("owner_id", meeting.OwnerID).Msg("Meeting created")
	http.Redirect(w, r, "/meetings", http.StatusSeeOther)
}

// EditForm renders the edit form of a meeting.
func (h *MeetingHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	h.showMeeting(w, r, "meeting_edit.html", "Edit meeting")
}

// Edit updates a meeting. Only its creator may do so.
func (h *MeetingHandler) Edit(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r)
	if !ok {
		h.notFound(w, r, "Meeting not found")
		return
	}
	fields, ok := h.parseFields(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), identity, id, fields); err != nil {
		submitted := models.Meeting{ID: id}
		submitted.Apply(fields)
		if !isNotFound(err) {
			log.Warn().Err(err).Int64("meeting_id", id).Int64("user_id", identity.UserID).Msg("Meeting update rejected")
		}
		h.fail(w, r, err, "meeting_edit.html", "Edit meeting", submitted)
		return
	}

	log.Info().Int64("meeting_id", id).Msg("Meeting updated")
	http.Redirect(w, r, "/meetings", http.StatusSeeOther)
}

// DeleteForm renders the delete confirmation page of a meeting.
func (h *MeetingHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	h.showMeeting(w, r, "meeting_delete.html", "Delete meeting")
}

// Delete removes a meeting. Only its creator may do so.
func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r)
	if !ok {
		h.notFound(w, r, "Meeting not found")
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		if isNotFound(err) {
			h.fail(w, r, err, "meeting_delete.html", "Delete meeting", nil)
			return
		}
		log.Warn().Err(err).Int64("meeting_id", id).Int64("user_id", identity.UserID).Msg("Meeting delete rejected")
		meeting, getErr := h.service.Get(r.Context(), id)
		if getErr != nil {
			h.fail(w, r, getErr, "meeting_delete.html", "Delete meeting", nil)
			return
		}
		h.fail(w, r, err, "meeting_delete.html", "Delete meeting", meeting)
		return
	}

	log.Info().Int64("meeting_id", id).Msg("Meeting deleted")
	http.Redirect(w, r, "/meetings", http.StatusSeeOther)
}

func (h *MeetingHandler) showMeeting(w http.ResponseWriter, r *http.Request, name, title string) {
	if _, ok := currentIdentity(w, r); !ok {
		return
	}
	id, ok := idParam(r)
	if !ok {
		h.notFound(w, r, "Meeting not found")
		return
	}

	meeting, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, name, title, nil)
		return
	}
	h.render(w, r, http.StatusOK, name, title, nil, meeting)
}

func (h *MeetingHandler) parseFields(w http.ResponseWriter, r *http.Request) (models.MeetingFields, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return models.MeetingFields{}, false
	}
	return models.MeetingFields{
		Title: r.PostFormValue("title"),
		Time:  r.PostFormValue("time"),
		Body:  r.PostFormValue("body"),
	}, true
}

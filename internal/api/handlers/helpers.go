package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/meetings/internal/auth"
	"github.com/isdelr/meetings/internal/services"
	"github.com/isdelr/meetings/internal/view"
)

// LoginPath is where anonymous users are sent.
const LoginPath = "/user/login"

// MsgNotOwner is shown when a user tries to change someone else's meeting.
const MsgNotOwner = "You can only modify meetings you created"

// pages renders templates with the request's session state filled in.
type pages struct {
	views *view.Engine
}

func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name, title string, errs []string, data any) {
	principal := auth.PrincipalFromContext(r.Context())
	err := p.views.Render(w, status, name, view.TemplateData{
		Title:         title,
		Authenticated: principal.IsAuthenticated(),
		Email:         principal.Identity().Email,
		Errors:        errs,
		Data:          data,
	})
	if err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (p pages) notFound(w http.ResponseWriter, r *http.Request, title string) {
	p.render(w, r, http.StatusNotFound, "error.html", title, nil, nil)
}

func (p pages) serverError(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusInternalServerError, "error.html", "Something went wrong", nil, nil)
}

// fail renders the outcome of a rejected operation. Validation and ownership
// failures re-render the originating page; missing resources get a 404 page.
func (p pages) fail(w http.ResponseWriter, r *http.Request, err error, name, title string, data any) {
	var vErr *services.ValidationError
	var nfErr *services.NotFoundError
	switch {
	case errors.As(err, &vErr):
		p.render(w, r, http.StatusBadRequest, name, title, vErr.Messages, data)
	case errors.Is(err, auth.ErrUnauthorized):
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
	case errors.Is(err, auth.ErrForbidden):
		p.render(w, r, http.StatusForbidden, name, title, []string{MsgNotOwner}, data)
	case errors.As(err, &nfErr):
		p.notFound(w, r, nfErr.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		p.serverError(w, r)
	}
}

// currentIdentity returns the logged-in user, redirecting to the login page otherwise.
func currentIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, err := auth.RequireAuthenticated(auth.PrincipalFromContext(r.Context()))
	if err != nil {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return auth.Identity{}, false
	}
	return identity, true
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isNotFound(err error) bool {
	var nfErr *services.NotFoundError
	return errors.As(err, &nfErr)
}

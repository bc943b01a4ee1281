package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/meetings/internal/auth"
	"github.com/isdelr/meetings/internal/services"
	"github.com/isdelr/meetings/internal/view"
)

// UserHandler handles signup, login, logout and user lookups.
type UserHandler struct {
	pages
	service      services.AccountServiceProvider
	cookieTTL    time.Duration
	secureCookie bool
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.AccountServiceProvider, views *view.Engine, cookieTTL time.Duration, secureCookie bool) *UserHandler {
	return &UserHandler{
		pages:        pages{views: views},
		service:      service,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

type signupPageData struct {
	Name  string
	Email string
}

type loginPageData struct {
	Email string
}

// Index renders the landing page.
func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html", "Home", nil, nil)
}

// SignupForm renders the signup page.
func (h *UserHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup.html", "Sign up", nil, signupPageData{})
}

// Signup registers a user and logs them in.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	in := auth.SignupInput{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	user, token, err := h.service.Signup(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, "signup.html", "Sign up", signupPageData{Name: in.Name, Email: in.Email})
		return
	}

	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("User registered")
	auth.SetSessionCookie(w, token, h.cookieTTL, h.secureCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm renders the login page.
func (h *UserHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", "Log in", nil, loginPageData{})
}

// Login handles user authentication and sets the session cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	in := auth.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	user, token, err := h.service.Login(r.Context(), in)
	if err != nil {
		log.Warn().Err(err).Str("email", in.Email).Msg("Failed authentication attempt")
		h.fail(w, r, err, "login.html", "Log in", loginPageData{Email: in.Email})
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("User logged in")
	auth.SetSessionCookie(w, token, h.cookieTTL, h.secureCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout drops the client's session cookie. The token is not revoked server-side.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Get returns a user's public profile as JSON.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAuthenticated(auth.PrincipalFromContext(r.Context())); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := idParam(r)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		var nfErr *services.NotFoundError
		if errors.As(err, &nfErr) {
			writeJSONError(w, http.StatusNotFound, nfErr.Error())
			return
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user by ID")
		writeJSONError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

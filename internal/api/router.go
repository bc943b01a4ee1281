package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/unrolled/secure"

	"github.com/isdelr/meetings/internal/api/handlers"
	"github.com/isdelr/meetings/internal/auth"
	"github.com/isdelr/meetings/internal/services"
	"github.com/isdelr/meetings/internal/view"
)

// Options tunes the router for the deployment environment.
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Production     bool
	CookieTTL      time.Duration
}

// NewRouter creates and configures a new Chi router.
func NewRouter(gate *auth.Gate, views *view.Engine, accounts services.AccountServiceProvider, meetings services.MeetingServiceProvider, opts Options) *chi.Mux {
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLRedirect:           opts.Production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(secureMiddleware.Handler)
	r.Use(gate.Middleware)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(accounts, views, opts.CookieTTL, opts.Production)
	meetingHandler := handlers.NewMeetingHandler(meetings, views)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/", userHandler.Index)

	r.Route("/user", func(r chi.Router) {
		r.Get("/signup", userHandler.SignupForm)
		r.Post("/signup", userHandler.Signup)
		r.Get("/login", userHandler.LoginForm)
		r.Post("/login", userHandler.Login)
		r.Get("/logout", userHandler.Logout)
	})

	r.Route("/meetings", func(r chi.Router) {
		r.Use(auth.RequireLogin(handlers.LoginPath))
		r.Get("/", meetingHandler.List)
		r.Get("/create", meetingHandler.CreateForm)
		r.Post("/create", meetingHandler.Create)
		r.Get("/edit/{id}", meetingHandler.EditForm)
		r.Post("/edit/{id}", meetingHandler.Edit)
		r.Get("/delete/{id}", meetingHandler.DeleteForm)
		r.Post("/delete/{id}", meetingHandler.Delete)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Get("/users/{id}", userHandler.Get)
	})

	return r
}

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/edta-team/portfolio/internal/app/portfolio"
)

type RouterOptions struct {
	// Logger receives one entry per request. Nil uses the logrus standard logger.
	Logger logrus.FieldLogger
	// Session configures the session cookie.
	Session SessionOptions
}

// NewRouter constructs the API HTTP router with default options.
func NewRouter(s *Server, reg *portfolio.Registry) http.Handler {
	return NewRouterWithOptions(s, reg, RouterOptions{})
}

// NewRouterWithOptions constructs the API HTTP router.
//
// The intent and state routes run inside a visitor session resolved from the session
// cookie. /healthz and the read-only roster routes never create one.
func NewRouterWithOptions(s *Server, reg *portfolio.Registry, opts RouterOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewRequestLogger(log))
	r.Use(middleware.Recoverer)

	// Health endpoint is used for infra checks and never creates a session.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/members", s.ListMembers)
	r.Get("/members/{memberId}", s.GetMember)

	r.Group(func(r chi.Router) {
		r.Use(NewSessionMiddleware(reg, opts.Session))

		r.Get("/state", s.GetState)

		r.Route("/intents", func(r chi.Router) {
			r.Post("/explore", s.Explore)
			r.Post("/select-member", s.SelectMember)
			r.Post("/back-to-team", s.BackToTeam)
			r.Post("/back-to-landing", s.BackToLanding)
			r.Post("/open-login", s.OpenLogin)
			r.Post("/close-login", s.CloseLogin)
			r.Post("/login", s.SubmitLogin)
			r.Post("/toggle-edit", s.ToggleEdit)
			r.Post("/edit-field", s.EditField)
			r.Post("/upload-image", s.UploadImage)
			r.Post("/save", s.SaveChanges)
			r.Post("/cancel-edit", s.CancelEdit)
		})
		r.Patch("/edit-buffer", s.PatchEditBuffer)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no such route", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
	return r
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/edta-team/portfolio/internal/app/portfolio"
)

// SessionCookieName is the cookie carrying the visitor session id.
const SessionCookieName = "portfolio_session"

// SessionOptions configures the session cookie.
type SessionOptions struct {
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// NewSessionMiddleware resolves the visitor session from its cookie, starting a fresh
// session (on the landing page) when the cookie is missing or its session has expired.
// The session's controller is stored in the request context.
func NewSessionMiddleware(reg *portfolio.Registry, opts SessionOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				id   portfolio.SessionID
				ctrl *portfolio.Controller
				ok   bool
			)
			if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
				id = portfolio.SessionID(c.Value)
				ctrl, ok = reg.Get(id)
			}
			if !ok {
				id, ctrl = reg.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    string(id),
					Path:     "/",
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSession(r.Context(), id, ctrl)
			log := requestLogger(ctx, logrus.StandardLogger()).WithField("session", string(id))
			next.ServeHTTP(w, r.WithContext(withLogger(ctx, log)))
		})
	}
}

// NewRequestLogger logs one structured entry per request.
func NewRequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := log.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), reqLog)))

			reqLog.WithFields(logrus.Fields{
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info("request")
		})
	}
}

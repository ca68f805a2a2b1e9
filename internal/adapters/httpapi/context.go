package httpapi

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/edta-team/portfolio/internal/app/portfolio"
)

type sessionKey struct{}

type session struct {
	id   portfolio.SessionID
	ctrl *portfolio.Controller
}

func WithSession(ctx context.Context, id portfolio.SessionID, ctrl *portfolio.Controller) context.Context {
	return context.WithValue(ctx, sessionKey{}, session{id: id, ctrl: ctrl})
}

func SessionFromContext(ctx context.Context) (portfolio.SessionID, *portfolio.Controller, bool) {
	v, ok := ctx.Value(sessionKey{}).(session)
	return v.id, v.ctrl, ok && v.ctrl != nil
}

type loggerKey struct{}

func withLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// requestLogger returns the request-scoped logger, falling back to def.
func requestLogger(ctx context.Context, def logrus.FieldLogger) logrus.FieldLogger {
	if v, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok {
		return v
	}
	return def
}

package middleware

import (
	"context"
	"net/http"

	"github.com/shopease/shopease-backend/internal/session"
	"github.com/shopease/shopease-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

type sessionCtxKey struct{}

// Session resolves the shopping session named by the X-Session-Id header,
// creating a fresh one when the header is blank or stale, and echoes the
// id back so the SPA can persist it.
func Session(manager *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, created := manager.Resolve(r.Header.Get(sessionIDHeader))

			w.Header().Set(sessionIDHeader, sess.ID())

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID())
				if created {
					logg.Info(ctx, "session.created")
				}
			}
			ctx = WithSession(ctx, sess)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession injects the resolved session into the context for
// downstream handlers.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sess)
}

// SessionFromContext returns the resolved session, or nil outside the
// session middleware.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*session.Session)
	return sess
}

package middleware

import (
	"context"
	"net/http"
	"time"

	"adstudio/internal/workflow"
)

type SessionOptions struct {
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

// Session attaches the caller's workflow session to the request context,
// starting a new one when the cookie is missing or its session has expired.
func Session(store *workflow.Store, opts SessionOptions) func(http.Handler) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = "studio_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *workflow.Session
			if c, err := r.Cookie(opts.CookieName); err == nil {
				sess, _ = store.Get(c.Value)
			}
			if sess == nil {
				sess = store.Create()
			}
			cookie := &http.Cookie{
				Name:     opts.CookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			}
			if opts.MaxAge > 0 {
				cookie.MaxAge = int(opts.MaxAge / time.Second)
			}
			http.SetCookie(w, cookie)
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionFromContext(ctx context.Context) *workflow.Session {
	if v, ok := ctx.Value(sessionKey).(*workflow.Session); ok {
		return v
	}
	return nil
}

// ContextWithSession is used by tests and handlers that run outside the
// middleware chain.
func ContextWithSession(ctx context.Context, sess *workflow.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

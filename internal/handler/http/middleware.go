package http

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"
)

// sessionCookieName carries the browsing-session ID between requests.
const sessionCookieName = "mmbm_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionMiddleware assigns every request a browsing-session ID, minting a
// fresh one and setting the cookie when none is present. The ID only scopes
// the in-memory cart; it authenticates nothing.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string

		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sid = cookie.Value
		} else {
			sid = uuid.Must(uuid.NewV4()).String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID returns the browsing-session ID stored by SessionMiddleware, or
// "" when the middleware did not run.
func sessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}

// Package api implements the catalog preview server using chi.
package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie carries the visitor's session id.
const SessionCookie = "showcase_session"

const sessionMaxAge = 365 * 24 * 60 * 60

type sessionKey struct{}

// SessionMiddleware makes sure every request carries a session id, issuing a
// new cookie when the request has none or an unparseable one.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

// SessionID returns the id stored by SessionMiddleware.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

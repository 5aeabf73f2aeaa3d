package middleware

import (
	"go-forum-app/internal/principal"
	"go-forum-app/internal/session"
	"net/http"
)

// PrincipalSessionKey is the session key under which the caller's principal is kept.
const PrincipalSessionKey = "principal"

// Identity attaches the caller principal to the request context.
// A valid principal.Header wins; otherwise the principal stored in the
// session is used, and a new one is created on the first visit.
func Identity(sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := principal.Parse(r.Header.Get(principal.Header))
			if !ok {
				p, ok = principal.Parse(sm.GetString(r.Context(), PrincipalSessionKey))
			}
			if !ok {
				p = principal.New()
				sm.Put(r.Context(), PrincipalSessionKey, p.String())
			}
			next.ServeHTTP(w, r.WithContext(principal.NewContext(r.Context(), p)))
		})
	}
}

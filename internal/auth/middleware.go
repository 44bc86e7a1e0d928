package auth

import (
	"context"
	"net/http"

	"github.com/piyushKumar-1/betterbe/internal/api/respond"
)

type contextKey struct{}

// Middleware authenticates every request with the given Authorizer and
// stores the resolved user in the request context.
func Middleware(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractToken(r)
			if err != nil {
				respond.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}
			user, err := authorizer.Authorize(r.Context(), token)
			if err != nil {
				respond.WriteError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*UserInfo, bool) {
	u, ok := ctx.Value(contextKey{}).(*UserInfo)
	return u, ok
}

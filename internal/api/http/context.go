// Package http contains the transport layer: thin handlers that decode
// requests, call services and encode responses.
package http

import (
	"net/http"

	"github.com/piyushKumar-1/betterbe/internal/api/respond"
	"github.com/piyushKumar-1/betterbe/internal/auth"
)

// requestUserID resolves the authenticated user placed in the request
// context by auth.Middleware. Writes 401 and returns false when absent.
func requestUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return u.UserID, true
}

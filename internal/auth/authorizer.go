package auth

import (
	"context"
)

// UserInfo contains information about an authenticated user
type UserInfo struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Authorizer validates access tokens and resolves them to a user in one call
type Authorizer interface {
	// Authorize validates the token and returns the user it belongs to,
	// or an error if authentication fails.
	Authorize(ctx context.Context, token string) (*UserInfo, error)
}

package auth

import (
	"context"
	"errors"
)

const (
	// LocalDevToken is the hardcoded access token for local development only
	LocalDevToken = "bb_local_dev_token"

	// LocalDevUserID is the user every local dev request resolves to
	LocalDevUserID = "betterbe-dev"
)

// MockAuthorizer provides a simple authorizer for local development.
// It only recognizes the hardcoded LocalDevToken and resolves it to a
// fixed development user.
type MockAuthorizer struct{}

// NewMockAuthorizer creates a new MockAuthorizer for local development
func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

func (m *MockAuthorizer) Authorize(ctx context.Context, token string) (*UserInfo, error) {
	if token != LocalDevToken {
		return nil, errors.New("invalid token for local development")
	}
	return &UserInfo{
		UserID: LocalDevUserID,
		Email:  "dev@betterbe.local",
	}, nil
}

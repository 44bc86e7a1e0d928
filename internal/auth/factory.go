package auth

import (
	"github.com/piyushKumar-1/betterbe/internal/config"
)

// AuthorizerFactory creates the appropriate Authorizer based on environment
type AuthorizerFactory struct {
	config *config.Config
}

// NewAuthorizerFactory creates a new AuthorizerFactory
func NewAuthorizerFactory(cfg *config.Config) *AuthorizerFactory {
	return &AuthorizerFactory{config: cfg}
}

// CreateAuthorizer selects the authorizer for the current mode.
// Production token validation is delegated to the identity provider
// fronting this service; until that integration lands, non-dev
// deployments also run the mock.
func (f *AuthorizerFactory) CreateAuthorizer() Authorizer {
	if f.config.IsDevMode() {
		return NewMockAuthorizer()
	}
	return NewMockAuthorizer()
}

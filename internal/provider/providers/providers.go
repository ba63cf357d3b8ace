package providers

import (
	"github.com/synctv-org/authd/internal/provider"
)

type constructor func(provider.Oauth2Option) (provider.Interface, error)

var allowedProviders = make(map[provider.OAuth2Provider]constructor)

func registerProvider(p provider.OAuth2Provider, c constructor) {
	allowedProviders[p] = c
}

// New builds the named provider from its client credentials.
func New(p provider.OAuth2Provider, opt provider.Oauth2Option) (provider.Interface, error) {
	c, ok := allowedProviders[p]
	if !ok {
		return nil, provider.FormatErrNotImplemented(p)
	}
	return c(opt)
}

func AllowedProvider() []provider.OAuth2Provider {
	ps := make([]provider.OAuth2Provider, 0, len(allowedProviders))
	for p := range allowedProviders {
		ps = append(ps, p)
	}
	return ps
}

package conf

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/synctv-org/authd/internal/provider"
	"github.com/synctv-org/authd/internal/provider/providers"
)

type OAuth2Config struct {
	Providers map[provider.OAuth2Provider]OAuth2ProviderConfig `yaml:"providers"`
}

type OAuth2ProviderConfig struct {
	Enable       bool   `yaml:"enable"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
	TrustEmail   bool   `yaml:"trust_email" hc:"merge into existing users by verified email"`

	AuthURL    string `yaml:"auth_url,omitempty"`
	TokenURL   string `yaml:"token_url,omitempty"`
	APIBaseURL string `yaml:"api_base_url,omitempty"`
}

func (c OAuth2ProviderConfig) Option() provider.Oauth2Option {
	return provider.Oauth2Option{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		AuthURL:      c.AuthURL,
		TokenURL:     c.TokenURL,
		APIBaseURL:   c.APIBaseURL,
	}
}

// TrustedProviders lists the enabled providers whose verified emails may
// be merged.
func (c OAuth2Config) TrustedProviders() []provider.OAuth2Provider {
	var ps []provider.OAuth2Provider
	for p, pc := range c.Providers {
		if pc.Enable && pc.TrustEmail {
			ps = append(ps, p)
		}
	}
	return ps
}

// Validate rejects provider keys that have no adapter, enabled or not, so a
// typo in the config fails at startup instead of silently disabling login.
func (c OAuth2Config) Validate() error {
	allowed := providers.AllowedProvider()
	for p := range c.Providers {
		if !slices.Contains(allowed, p) {
			names := make([]string, len(allowed))
			for i, a := range allowed {
				names[i] = string(a)
			}
			sort.Strings(names)
			return fmt.Errorf("oauth2: unknown provider %q, supported: %s", p, strings.Join(names, ", "))
		}
	}
	return nil
}

func DefaultOAuth2Config() OAuth2Config {
	return OAuth2Config{
		Providers: map[provider.OAuth2Provider]OAuth2ProviderConfig{
			providers.GithubName: {
				TrustEmail: true,
			},
			providers.GoogleName: {
				TrustEmail: true,
			},
		},
	}
}

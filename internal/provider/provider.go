package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

type OAuth2Provider string

// ErrExchangeFailed is returned when the authorization code cannot be turned
// into a provider identity, whatever the upstream reason.
var ErrExchangeFailed = errors.New("oauth2 exchange failed")

// UserInfo is the identity a provider asserts for the owner of an
// authorization code. EmailVerified follows the provider's own flags.
type UserInfo struct {
	ProviderUserID string
	Username       string
	Email          string
	EmailVerified  bool
}

type Oauth2Option struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Optional endpoint overrides, used for self-hosted deployments.
	AuthURL    string
	TokenURL   string
	APIBaseURL string
}

type Interface interface {
	Provider() OAuth2Provider
	NewAuthURL(ctx context.Context, state string) (string, error)
	GetUserInfo(ctx context.Context, code string) (*UserInfo, error)
}

// Registry holds the providers enabled for this process.
type Registry struct {
	providers map[OAuth2Provider]Interface
}

func NewRegistry(ps ...Interface) *Registry {
	r := &Registry{providers: make(map[OAuth2Provider]Interface, len(ps))}
	for _, p := range ps {
		r.Register(p)
	}
	return r
}

func (r *Registry) Register(p Interface) {
	r.providers[p.Provider()] = p
}

func (r *Registry) Get(p OAuth2Provider) (Interface, error) {
	pi, ok := r.providers[p]
	if !ok {
		return nil, FormatErrNotImplemented(p)
	}
	return pi, nil
}

func (r *Registry) Enabled() []OAuth2Provider {
	ps := make([]OAuth2Provider, 0, len(r.providers))
	for p := range r.providers {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
	return ps
}

// ExchangeError wraps the upstream cause of a failed exchange. It matches
// ErrExchangeFailed with errors.Is.
type ExchangeError struct {
	Provider OAuth2Provider
	Step     string
	Err      error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Step, e.Err)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

func (e *ExchangeError) Is(target error) bool {
	return target == ErrExchangeFailed
}

func NewExchangeError(p OAuth2Provider, step string, err error) error {
	return &ExchangeError{Provider: p, Step: step, Err: err}
}

type FormatErrNotImplemented string

func (f FormatErrNotImplemented) Error() string {
	return fmt.Sprintf("%s not implemented", string(f))
}

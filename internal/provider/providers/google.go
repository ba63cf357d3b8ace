package providers

import (
	"context"
	"errors"

	"github.com/synctv-org/authd/internal/provider"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const GoogleName provider.OAuth2Provider = "google"

type GoogleProvider struct {
	config  oauth2.Config
	apiBase string
}

func newGoogleProvider(c provider.Oauth2Option) (provider.Interface, error) {
	g := &GoogleProvider{
		config: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		apiBase: "https://www.googleapis.com",
	}
	if c.AuthURL != "" {
		g.config.Endpoint.AuthURL = c.AuthURL
	}
	if c.TokenURL != "" {
		g.config.Endpoint.TokenURL = c.TokenURL
	}
	if c.APIBaseURL != "" {
		g.apiBase = c.APIBaseURL
	}
	return g, nil
}

func (g *GoogleProvider) Provider() provider.OAuth2Provider {
	return GoogleName
}

func (g *GoogleProvider) NewAuthURL(_ context.Context, state string) (string, error) {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (g *GoogleProvider) GetUserInfo(ctx context.Context, code string) (*provider.UserInfo, error) {
	tk, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, provider.NewExchangeError(GoogleName, "token", err)
	}
	if tk.AccessToken == "" {
		return nil, provider.NewExchangeError(GoogleName, "token", errors.New("no access token in response"))
	}

	ui := googleUserInfo{}
	err = getJSON(ctx, g.config.Client(ctx, tk), joinURL(g.apiBase, "/oauth2/v2/userinfo"), &ui)
	if err != nil {
		return nil, provider.NewExchangeError(GoogleName, "userinfo", err)
	}
	if ui.ID == "" {
		return nil, provider.NewExchangeError(GoogleName, "userinfo", errors.New("missing user id"))
	}

	return &provider.UserInfo{
		ProviderUserID: ui.ID,
		Username:       ui.Name,
		Email:          ui.Email,
		EmailVerified:  ui.VerifiedEmail,
	}, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

func init() {
	registerProvider(GoogleName, newGoogleProvider)
}

package providers

import (
	"context"
	"errors"
	"strconv"

	"github.com/synctv-org/authd/internal/provider"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/gitlab"
)

const GitlabName provider.OAuth2Provider = "gitlab"

type GitlabProvider struct {
	config  oauth2.Config
	apiBase string
}

func newGitlabProvider(c provider.Oauth2Option) (provider.Interface, error) {
	g := &GitlabProvider{
		config: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       []string{"read_user"},
			Endpoint:     gitlab.Endpoint,
		},
		apiBase: "https://gitlab.com/api/v4",
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

func (g *GitlabProvider) Provider() provider.OAuth2Provider {
	return GitlabName
}

func (g *GitlabProvider) NewAuthURL(_ context.Context, state string) (string, error) {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (g *GitlabProvider) GetUserInfo(ctx context.Context, code string) (*provider.UserInfo, error) {
	tk, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, provider.NewExchangeError(GitlabName, "token", err)
	}
	if tk.AccessToken == "" {
		return nil, provider.NewExchangeError(GitlabName, "token", errors.New("no access token in response"))
	}

	ui := gitlabUserInfo{}
	err = getJSON(ctx, g.config.Client(ctx, tk), joinURL(g.apiBase, "/user"), &ui)
	if err != nil {
		return nil, provider.NewExchangeError(GitlabName, "user", err)
	}
	if ui.ID == 0 {
		return nil, provider.NewExchangeError(GitlabName, "user", errors.New("missing user id"))
	}

	name := ui.Name
	if name == "" {
		name = ui.Username
	}
	return &provider.UserInfo{
		ProviderUserID: strconv.FormatInt(ui.ID, 10),
		Username:       name,
		Email:          ui.Email,
		// GitLab only exposes the primary email once it has been confirmed.
		EmailVerified: ui.Email != "" && ui.ConfirmedAt != "",
	}, nil
}

type gitlabUserInfo struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ConfirmedAt string `json:"confirmed_at"`
}

func init() {
	registerProvider(GitlabName, newGitlabProvider)
}

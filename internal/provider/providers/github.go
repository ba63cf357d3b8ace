package providers

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v56/github"
	"github.com/synctv-org/authd/internal/provider"
	"golang.org/x/oauth2"
	githubEndpoint "golang.org/x/oauth2/github"
)

const GithubName provider.OAuth2Provider = "github"

type GithubProvider struct {
	config  oauth2.Config
	baseURL *url.URL
}

func newGithubProvider(c provider.Oauth2Option) (provider.Interface, error) {
	p := &GithubProvider{
		config: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githubEndpoint.Endpoint,
		},
	}
	if c.AuthURL != "" {
		p.config.Endpoint.AuthURL = c.AuthURL
	}
	if c.TokenURL != "" {
		p.config.Endpoint.TokenURL = c.TokenURL
	}
	if c.APIBaseURL != "" {
		base := c.APIBaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, err
		}
		p.baseURL = u
	}
	return p, nil
}

func (p *GithubProvider) Provider() provider.OAuth2Provider {
	return GithubName
}

func (p *GithubProvider) NewAuthURL(_ context.Context, state string) (string, error) {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (p *GithubProvider) GetToken(ctx context.Context, code string) (*oauth2.Token, error) {
	tk, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	if tk.AccessToken == "" {
		return nil, errors.New("no access token in response")
	}
	return tk, nil
}

func (p *GithubProvider) GetUserInfo(ctx context.Context, code string) (*provider.UserInfo, error) {
	tk, err := p.GetToken(ctx, code)
	if err != nil {
		return nil, provider.NewExchangeError(GithubName, "token", err)
	}

	client := github.NewClient(p.config.Client(ctx, tk))
	if p.baseURL != nil {
		client.BaseURL = p.baseURL
	}

	u, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, provider.NewExchangeError(GithubName, "user", err)
	}
	if u.GetID() == 0 {
		return nil, provider.NewExchangeError(GithubName, "user", errors.New("missing user id"))
	}

	emails, _, err := client.Users.ListEmails(ctx, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, provider.NewExchangeError(GithubName, "emails", err)
	}

	ui := &provider.UserInfo{
		ProviderUserID: strconv.FormatInt(u.GetID(), 10),
		Username:       u.GetName(),
	}
	if ui.Username == "" {
		ui.Username = u.GetLogin()
	}
	for _, e := range emails {
		if e.GetPrimary() && e.GetVerified() {
			ui.Email = e.GetEmail()
			ui.EmailVerified = true
			break
		}
	}
	// The public profile email carries no verification guarantee.
	if ui.Email == "" {
		ui.Email = u.GetEmail()
	}
	return ui, nil
}

func init() {
	registerProvider(GithubName, newGithubProvider)
}

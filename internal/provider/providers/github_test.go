package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/internal/provider"
	"github.com/synctv-org/authd/internal/provider/providers"
)

type fakeGithub struct {
	token  string
	user   string
	emails string
}

func (f fakeGithub) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.token))
	})
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer gho_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.user))
	})
	mux.HandleFunc("/api/user/emails", func(w http.ResponseWriter, r *http.Request) {
		if f.emails == "" {
			http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.emails))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGithub(t *testing.T, srv *httptest.Server) provider.Interface {
	t.Helper()
	p, err := providers.New(providers.GithubName, provider.Oauth2Option{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/auth/oauth2/github/callback",
		AuthURL:      srv.URL + "/login/oauth/authorize",
		TokenURL:     srv.URL + "/login/oauth/access_token",
		APIBaseURL:   srv.URL + "/api",
	})
	require.NoError(t, err)
	return p
}

const githubToken = `{"access_token":"gho_test","token_type":"bearer","scope":"user:email"}`

func TestGithubPrimaryVerifiedEmail(t *testing.T) {
	srv := fakeGithub{
		token: githubToken,
		user:  `{"id":583231,"login":"octocat","name":"The Octocat","email":"public@example.com"}`,
		emails: `[
			{"email":"old@example.com","primary":false,"verified":true},
			{"email":"Octo@Example.com","primary":true,"verified":true}
		]`,
	}.server(t)

	ui, err := newGithub(t, srv).GetUserInfo(context.Background(), "code")
	require.NoError(t, err)
	require.Equal(t, "583231", ui.ProviderUserID)
	require.Equal(t, "The Octocat", ui.Username)
	require.Equal(t, "Octo@Example.com", ui.Email)
	require.True(t, ui.EmailVerified)
}

func TestGithubUnverifiedPrimaryFallsBackToProfileEmail(t *testing.T) {
	srv := fakeGithub{
		token:  githubToken,
		user:   `{"id":7,"login":"octocat","email":"public@example.com"}`,
		emails: `[{"email":"octo@example.com","primary":true,"verified":false}]`,
	}.server(t)

	ui, err := newGithub(t, srv).GetUserInfo(context.Background(), "code")
	require.NoError(t, err)
	require.Equal(t, "octocat", ui.Username)
	require.Equal(t, "public@example.com", ui.Email)
	require.False(t, ui.EmailVerified)
}

func TestGithubMissingAccessToken(t *testing.T) {
	srv := fakeGithub{
		token: `{"error":"bad_verification_code","error_description":"The code passed is incorrect or expired."}`,
		user:  `{"id":7,"login":"octocat"}`,
	}.server(t)

	_, err := newGithub(t, srv).GetUserInfo(context.Background(), "expired")
	require.ErrorIs(t, err, provider.ErrExchangeFailed)
}

func TestGithubUpstreamFailure(t *testing.T) {
	srv := fakeGithub{
		token: githubToken,
		user:  `{"id":7,"login":"octocat"}`,
	}.server(t)

	_, err := newGithub(t, srv).GetUserInfo(context.Background(), "code")
	require.ErrorIs(t, err, provider.ErrExchangeFailed)

	var exErr *provider.ExchangeError
	require.ErrorAs(t, err, &exErr)
	require.Equal(t, "emails", exErr.Step)
}

func TestUnknownProvider(t *testing.T) {
	_, err := providers.New("myspace", provider.Oauth2Option{})
	require.Error(t, err)
}

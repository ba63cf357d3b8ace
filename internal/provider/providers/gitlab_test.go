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

func newGitlab(t *testing.T, user string) provider.Interface {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"glpat","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/api/v4/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer glpat" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(user))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p, err := providers.New(providers.GitlabName, provider.Oauth2Option{
		ClientID:   "client",
		TokenURL:   srv.URL + "/oauth/token",
		APIBaseURL: srv.URL + "/api/v4",
	})
	require.NoError(t, err)
	return p
}

func TestGitlabConfirmedEmail(t *testing.T) {
	p := newGitlab(t, `{"id":42,"username":"alice","name":"","email":"alice@example.com","confirmed_at":"2024-01-01T00:00:00Z"}`)
	ui, err := p.GetUserInfo(context.Background(), "code")
	require.NoError(t, err)
	require.Equal(t, &provider.UserInfo{
		ProviderUserID: "42",
		Username:       "alice",
		Email:          "alice@example.com",
		EmailVerified:  true,
	}, ui)
}

func TestGitlabUnconfirmedEmail(t *testing.T) {
	p := newGitlab(t, `{"id":42,"username":"alice","name":"Alice","email":"alice@example.com"}`)
	ui, err := p.GetUserInfo(context.Background(), "code")
	require.NoError(t, err)
	require.Equal(t, "Alice", ui.Username)
	require.False(t, ui.EmailVerified)
}

func TestGitlabMissingUserID(t *testing.T) {
	p := newGitlab(t, `{"username":"alice"}`)
	_, err := p.GetUserInfo(context.Background(), "code")
	require.ErrorIs(t, err, provider.ErrExchangeFailed)
}

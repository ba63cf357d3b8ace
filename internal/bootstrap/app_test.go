package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/internal/conf"
	"github.com/synctv-org/authd/internal/metrics"
	"github.com/synctv-org/authd/internal/provider/providers"
	"github.com/synctv-org/authd/internal/session"
)

func TestAppBootstrap(t *testing.T) {
	dir := t.TempDir()
	withFlags(t, dir)
	conf.Conf = conf.DefaultConfig()
	gh := conf.Conf.OAuth2.Providers[providers.GithubName]
	gh.Enable = true
	gh.ClientID = "id"
	conf.Conf.OAuth2.Providers[providers.GithubName] = gh

	app := NewApp()
	err := New(WithContext(context.Background())).Add(
		app.InitSysNotify,
		app.InitDatabase,
		app.InitSessionBackend,
		app.InitPassword,
		app.InitProviders,
		app.InitMetrics,
		app.InitIdentity,
	).Run()
	require.NoError(t, err)
	t.Cleanup(app.Store.Close)

	require.IsType(t, &session.MemoryBackend{}, app.Backend)
	require.IsType(t, &metrics.Collector{}, app.Metrics)
	require.Equal(t, []string{"github"}, toStrings(app.Providers.Enabled()))

	ctx := context.Background()
	u, err := app.Resolver.SignUp(ctx, "boot@example.com", "pw", "Boot")
	require.NoError(t, err)
	h, err := app.Issuer.Issue(ctx, "", u.ID)
	require.NoError(t, err)
	require.Equal(t, conf.Conf.Session.TTL, app.Issuer.TTL())
	got, err := app.Issuer.Resolve(ctx, h.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)
}

func TestInitProvidersRejectsUnknownKey(t *testing.T) {
	withFlags(t, t.TempDir())
	conf.Conf = conf.DefaultConfig()
	conf.Conf.OAuth2.Providers["gihtub"] = conf.OAuth2ProviderConfig{Enable: true}

	err := NewApp().InitProviders(context.Background())
	require.ErrorContains(t, err, "unknown provider")
}

func TestSqliteDSN(t *testing.T) {
	withFlags(t, "/data")
	c := conf.DefaultDatabaseConfig()
	require.Equal(t, "/data/authd.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN(c))

	c.DBName = "memory"
	require.Contains(t, sqliteDSN(c), ":memory:")
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
